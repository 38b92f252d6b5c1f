package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/manikantha-asam/ecommerce/internal/auth"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Products *ProductHandler
	Accounts *AccountHandler
	Cart     *CartHandler
	Orders   *OrderHandler
	Contact  *ContactHandler
	Tokens   *auth.Manager
}

// NewRouter wires the public, authenticated and staff route groups.
func NewRouter(h Handlers, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes.
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"message": "Hello, World!"})
		})
		r.Get("/getProducts", h.Products.ListProducts)
		r.Get("/product/{product_id}", h.Products.GetProduct)

		r.Post("/register", h.Accounts.Register)
		r.Post("/login", h.Accounts.Login)
		r.Post("/token/refresh", h.Accounts.Refresh)
		r.Post("/request-password-reset", h.Accounts.RequestPasswordReset)
		r.Post("/reset-password/{token}", h.Accounts.ResetPassword)

		r.Post("/contact", h.Contact.SubmitContact)

		// Routes requiring a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(h.Tokens))

			r.Get("/customer", h.Accounts.GetProfile)
			r.Put("/customer", h.Accounts.UpdateProfile)
			r.Post("/logout", h.Accounts.Logout)

			r.Post("/add-to-cart", h.Cart.AddToCart)
			r.Get("/view-cart", h.Cart.ViewCart)
			r.Put("/cart-item/{item_id}", h.Cart.UpdateCartItem)
			r.Delete("/cart-item/{item_id}", h.Cart.DeleteCartItem)

			r.Post("/place-order", h.Orders.PlaceOrder)
			r.Get("/user-orders", h.Orders.ListOwnOrders)
			r.Get("/order/{order_id}", h.Orders.GetOrder)
			r.Delete("/order/{order_id}", h.Orders.DeleteOrder)

			// Staff-only routes.
			r.Group(func(r chi.Router) {
				r.Use(StaffOnly)

				r.Get("/customers", h.Accounts.ListCustomers)
				r.Get("/all-orders", h.Orders.ListOrders)
				r.Put("/order/{order_id}", h.Orders.UpdateShippingStatus)

				r.Post("/products", h.Products.CreateProduct)
				r.Put("/products/{product_id}", h.Products.UpdateProduct)
				r.Delete("/products/{product_id}", h.Products.DeleteProduct)
			})
		})
	})

	return r
}
