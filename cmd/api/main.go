package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/joshua-takyi/staybooking/internal/config"
	"github.com/joshua-takyi/staybooking/internal/connect"
	"github.com/joshua-takyi/staybooking/internal/container"
	"github.com/joshua-takyi/staybooking/internal/models"
	"github.com/joshua-takyi/staybooking/internal/notify"
	"github.com/joshua-takyi/staybooking/internal/routes"
	"github.com/joshua-takyi/staybooking/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// resources tracks the connections opened at start-up so they can be closed on exit.
type resources struct {
	db    *sqlx.DB
	mongo *mongo.Client
	redis *redis.Client
}

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting StayBooking API server", "environment", cfg.Environment, "store", cfg.Store)

	ctx := context.Background()
	stores, res, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open stores", "error", err)
		os.Exit(1)
	}

	if cfg.SeedData {
		if err := services.SeedDemoData(ctx, stores.Users, stores.Rooms, logger); err != nil {
			logger.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	opts := container.Options{
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		NotifyTimeout: cfg.NotifyTimeout,
		AllowOrigins:  cfg.CORSAllowOrigins,
		Production:    cfg.IsProduction(),
	}
	if cfg.CloudinaryEnabled() {
		cld, err := connect.CloudinaryCredentials(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Error("Failed to connect to Cloudinary", "error", err)
			os.Exit(1)
		}
		opts.Cloudinary = cld
		logger.Info("Cloudinary image hosting enabled")
	}

	appContainer := container.NewContainer(logger, stores, setupSender(cfg, logger), opts)
	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	res.close(logger)

	logger.Info("Server exited")
}

// openStores picks the relational store from STORE and layers the optional
// MongoDB review store and Redis revocation list on top of it.
func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (container.Stores, *resources, error) {
	res := &resources{}
	stores := container.MemoryStores()

	if cfg.Store == config.StorePostgres {
		db, err := connect.PostgresConnect(ctx, cfg.DatabaseURL)
		if err != nil {
			return stores, res, err
		}
		res.db = db
		if err := connect.Migrate(ctx, db, logger); err != nil {
			res.close(logger)
			return stores, res, err
		}
		pg := models.PostgresNewRepo(db)
		stores.Users, stores.Rooms, stores.Bookings = pg, pg, pg
		logger.Info("Connected to Postgres successfully")
	}

	if cfg.MongoDBURI != "" {
		client, err := connect.MongoDBConnect(ctx, cfg.MongoDBURI)
		if err != nil {
			res.close(logger)
			return stores, res, err
		}
		res.mongo = client
		repo := models.MongodbNewRepo(client, cfg.MongoDBDatabase)
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warn("Failed to ensure review indexes", "error", err)
		}
		stores.Reviews = repo
		logger.Info("Connected to MongoDB successfully")
	}

	if cfg.RedisURL != "" {
		client, err := connect.RedisConnect(ctx, cfg.RedisURL)
		if err != nil {
			res.close(logger)
			return stores, res, err
		}
		res.redis = client
		stores.Sessions = models.RedisNewRepo(client)
		logger.Info("Connected to Redis successfully")
	}

	return stores, res, nil
}

func (r *resources) close(logger *slog.Logger) {
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			logger.Error("Error closing Postgres", "error", err)
		}
	}
	if err := connect.MongoDBDisconnect(r.mongo); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			logger.Error("Error closing Redis", "error", err)
		}
	}
}

func setupSender(cfg *config.Config, logger *slog.Logger) notify.Sender {
	if !cfg.SMTPEnabled() {
		logger.Info("SMTP_HOST not set, notifications will only be logged")
		return notify.NewLogSender(logger)
	}
	return notify.NewSMTPSender(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		Timeout:  cfg.NotifyTimeout,
	})
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
