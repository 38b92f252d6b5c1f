package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/manikantha-asam/ecommerce/internal/auth"
	"github.com/manikantha-asam/ecommerce/internal/cache"
	"github.com/manikantha-asam/ecommerce/internal/events"
	apphttp "github.com/manikantha-asam/ecommerce/internal/http"
	"github.com/manikantha-asam/ecommerce/internal/notify"
	"github.com/manikantha-asam/ecommerce/internal/repository"
	"github.com/manikantha-asam/ecommerce/internal/service"
)

type Config struct {
	HTTPPort string

	DBHost        string
	DBPort        int
	DBUser        string
	DBPassword    string
	DBName        string
	MigrationsDir string

	RedisAddr     string
	RedisPassword string

	KafkaBrokers string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	ContactInbox string
	FrontendURL  string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnvInt("DB_PORT", 5432),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "shop"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "internal/repository/migrations"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),

		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 24 * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "no-reply@shop.local"),
		ContactInbox: getEnv("CONTACT_INBOX", "support@shop.local"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),

		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	db, err := repository.Open(&repository.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.MigrationsDir,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := repository.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		logger.WithError(err).Fatal("failed to connect to redis")
	}
	cancelPing()

	redisCache := cache.NewRedisCache(redisClient)

	publisher := events.NewKafkaPublisher(logger, strings.Split(cfg.KafkaBrokers, ",")...)
	defer publisher.Close()

	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		From:      cfg.EmailFrom,
		ContactTo: cfg.ContactInbox,
	})

	tokens := auth.NewManager([]byte(cfg.JWTSecret), cfg.AccessTTL, cfg.RefreshTTL, redisCache)

	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	catalog := service.NewCatalogService(productRepo, redisCache, logger)
	accounts := service.NewAccountService(customerRepo, tokens, redisCache, mailer, logger, cfg.FrontendURL)
	carts := service.NewCartService(cartRepo, productRepo, logger)
	orders := service.NewOrderService(orderRepo, customerRepo, mailer, publisher, logger)

	router := apphttp.NewRouter(apphttp.Handlers{
		Products: apphttp.NewProductHandler(catalog),
		Accounts: apphttp.NewAccountHandler(accounts),
		Cart:     apphttp.NewCartHandler(carts),
		Orders:   apphttp.NewOrderHandler(orders),
		Contact:  apphttp.NewContactHandler(mailer),
		Tokens:   tokens,
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.HTTPPort).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Info("server exited")
}
