package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	"github.com/BruksfildServices01/health-portal/internal/cache"
	"github.com/BruksfildServices01/health-portal/internal/config"
	dbpkg "github.com/BruksfildServices01/health-portal/internal/db"
	"github.com/BruksfildServices01/health-portal/internal/infra/chatstore"
	"github.com/BruksfildServices01/health-portal/internal/infra/geocode"
	"github.com/BruksfildServices01/health-portal/internal/infra/imaging"
	"github.com/BruksfildServices01/health-portal/internal/infra/llm"
	"github.com/BruksfildServices01/health-portal/internal/infra/payment"
	"github.com/BruksfildServices01/health-portal/internal/infra/pdf"
	"github.com/BruksfildServices01/health-portal/internal/infra/storage"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/routes"
)

func runServer(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	// ======================================================
	// DATABASE
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if err := dbpkg.Migrate(db); err != nil {
		return err
	}
	logger.Info().Msg("connected to database")

	dispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer dispatcher.Close()

	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Audit:    dispatcher,
		Renderer: pdf.NewRenderer(""),
		Images:   imaging.NewWebPEncoder(),
		LLM:      llm.NewGemini(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel),
	}

	// ======================================================
	// BLOB STORAGE
	// ======================================================
	if cfg.IsDev() && cfg.S3AccessKey == "" && cfg.S3Endpoint == "" {
		logger.Warn().Msg("S3 not configured, keeping files in memory")
		deps.Blobs = storage.NewMemory()
	} else {
		deps.Blobs = storage.NewS3(cfg)
	}

	// ======================================================
	// REDIS (geocode cache, assistant rate limit)
	// ======================================================
	nominatim := geocode.NewNominatim(cfg.GeocoderURL, cfg.GeocoderUserAgent)
	deps.Geocoder = nominatim

	if store, err := connectRedis(ctx, cfg); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, running without cache and rate limit")
	} else {
		defer store.Close()
		deps.Geocoder = geocode.NewCached(nominatim, store)
		deps.Limiter = cache.NewLimiter(store, cfg.AssistantRateLimit, time.Minute)
	}

	// ======================================================
	// MONGODB (chat transcripts)
	// ======================================================
	mdb, err := dbpkg.NewMongo(ctx, cfg)
	switch {
	case err == nil:
		defer func() { _ = mdb.Client().Disconnect(context.Background()) }()
		chats := chatstore.NewMongo(mdb)
		if err := chats.EnsureIndexes(ctx); err != nil {
			return err
		}
		deps.Chats = chats
	case cfg.IsDev():
		logger.Warn().Err(err).Msg("mongodb unavailable, keeping chats in memory")
		deps.Chats = chatstore.NewMemory()
	default:
		return err
	}

	// ======================================================
	// PAYMENTS
	// ======================================================
	if cfg.MercadoPagoToken != "" {
		gw, err := payment.NewMercadoPago(cfg.MercadoPagoToken, cfg.PaymentNotificationURL)
		if err != nil {
			return err
		}
		deps.Gateway = gw
	} else {
		logger.Warn().Msg("MERCADOPAGO_ACCESS_TOKEN not set, online payments disabled")
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestLogger(logger),
		middleware.Recovery(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func connectRedis(ctx context.Context, cfg *config.Config) (*cache.Store, error) {
	store, err := cache.New(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
