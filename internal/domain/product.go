package domain

type Category string

const (
	CategoryMacbook   Category = "macbook"
	CategoryIphone    Category = "iphone"
	CategoryIpad      Category = "ipad"
	CategoryWatch     Category = "watch"
	CategoryAirpods   Category = "airpods"
	CategoryTvAndHome Category = "tvandhome"
	CategoryOthers    Category = "others"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryMacbook, CategoryIphone, CategoryIpad, CategoryWatch,
		CategoryAirpods, CategoryTvAndHome, CategoryOthers:
		return true
	}
	return false
}

type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Price       int64    `json:"price"` // minor currency units
	Category    Category `json:"category"`
}

// ValidateProduct checks an admin create/update payload. Returned map is
// keyed by field name and empty when the product is valid.
func ValidateProduct(p *Product) FieldErrors {
	errs := FieldErrors{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if len(p.Name) > 150 {
		errs["name"] = "name must be at most 150 characters"
	}
	if p.Price < 0 {
		errs["price"] = "price must not be negative"
	}
	if !ValidCategory(p.Category) {
		errs["category"] = "unknown category"
	}
	return errs
}
