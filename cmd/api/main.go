package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/choppersalon/platform/internal/api/router"
	"github.com/choppersalon/platform/internal/auth"
	"github.com/choppersalon/platform/internal/booking"
	"github.com/choppersalon/platform/internal/cart"
	"github.com/choppersalon/platform/internal/catalog"
	"github.com/choppersalon/platform/internal/checkout"
	appconfig "github.com/choppersalon/platform/internal/config"
	"github.com/choppersalon/platform/internal/notify"
	"github.com/choppersalon/platform/internal/observability/metrics"
	"github.com/choppersalon/platform/internal/storage"
	"github.com/choppersalon/platform/pkg/logging"
)

// wizardMaxAge bounds how long an abandoned checkout or booking flow is kept
// in memory.
const wizardMaxAge = 30 * time.Minute

func main() {
	// Load .env in development; real deployments set the environment.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting choppers-salon API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Redis backs sessions, carts and the fallback credential store.
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		logger.Error("failed to connect to redis", "error", err, "addr", cfg.RedisAddr)
		os.Exit(1)
	}
	cancelPing()
	kv := storage.NewRedisStore(redisClient)

	// Metrics registry with the standard process collectors.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	salonMetrics := metrics.NewSalonMetrics(registry)

	// Credential storage: Postgres when configured, Redis blob otherwise.
	var credRepo auth.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		credRepo = auth.NewPostgresRepository(pool)
		logger.Info("using postgres credential store")
	} else {
		credRepo = auth.NewKVRepository(kv, "authdb")
		logger.Info("using redis credential store")
	}

	sender := buildEmailSender(cfg, logger)

	sessions := auth.NewSessionStore(kv, cfg.SessionTTL)
	manager := auth.NewManager(sessions, cfg.SessionSecret, cfg.SessionTTL, cfg.Env == "production")
	legacy := auth.LegacyCredentials{Email: cfg.LegacyAuthEmail, Password: cfg.LegacyAuthPassword}
	authSvc := auth.NewService(credRepo, sessions, legacy, cfg.AuthLatency, salonMetrics, logger)

	products := catalog.Default()
	pricing := cart.Pricing{ShippingFee: cfg.ShippingFee, TaxRate: cfg.TaxRate}
	cartSvc := cart.NewService(cart.NewStore(kv), pricing, salonMetrics, logger)

	checkoutWizards := checkout.NewWizardStore(wizardMaxAge)
	defer checkoutWizards.Close()
	checkoutSvc := checkout.NewService(cartSvc, checkoutWizards, sender, salonMetrics, logger, cfg.OrderResetDelay)

	bookingWizards := booking.NewWizardStore(wizardMaxAge)
	defer bookingWizards.Close()
	bookingSvc := booking.NewService(bookingWizards, sessions, sender, salonMetrics, logger)

	routerCfg := &router.Config{
		Logger:          logger,
		Sessions:        manager,
		AuthHandler:     auth.NewHandler(authSvc, manager, logger),
		CatalogHandler:  catalog.NewHandler(products, logger),
		CartHandler:     cart.NewHandler(cartSvc, products, logger),
		CheckoutHandler: checkout.NewHandler(checkoutSvc, logger),
		BookingHandler:  booking.NewHandler(bookingSvc, logger),
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	if cfg.CORSAllowedOrigins != "" {
		routerCfg.CORSAllowedOrigins = splitOrigins(cfg.CORSAllowedOrigins)
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildEmailSender picks the configured transport: SendGrid first, then SES,
// falling back to the logging stub.
func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	if cfg.SendGridAPIKey != "" {
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			logger.Info("email notifications via sendgrid")
			return sender
		}
	}
	if cfg.SESFromEmail != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.AWSRegion),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
			),
		)
		if err != nil {
			logger.Error("failed to load AWS config, email disabled", "error", err)
			return notify.NewStubEmailSender(logger)
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			logger.Info("email notifications via SES")
			return sender
		}
	}
	logger.Info("email notifications disabled, using stub sender")
	return notify.NewStubEmailSender(logger)
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
