package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/storefront-catalog/internal/auth"
	"github.com/maxviazov/storefront-catalog/internal/auth/facebook"
	"github.com/maxviazov/storefront-catalog/internal/config"
	"github.com/maxviazov/storefront-catalog/internal/handler"
	"github.com/maxviazov/storefront-catalog/internal/logger"
	"github.com/maxviazov/storefront-catalog/internal/metrics"
	"github.com/maxviazov/storefront-catalog/internal/registry"
	postgres "github.com/maxviazov/storefront-catalog/internal/repository"
	mongorepo "github.com/maxviazov/storefront-catalog/internal/repository/mongo"
	pgrepo "github.com/maxviazov/storefront-catalog/internal/repository/postgres"
	"github.com/maxviazov/storefront-catalog/internal/service"
	"github.com/maxviazov/storefront-catalog/internal/settings"
)

func main() {
	// Load application config
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
	appLogger.Info().Msg("👋 Service stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	connectPgx, err := postgres.New(ctx, cfg, &appLogger)
	if err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}
	defer connectPgx.Close()
	pool := connectPgx.Pool()

	pingers := handler.Pingers{connectPgx}
	var store settings.Store
	switch cfg.Settings.Backend {
	case "mongo":
		mc, err := mongorepo.Connect(ctx, cfg.Mongo, appLogger)
		if err != nil {
			return fmt.Errorf("mongo connection failed: %w", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mc.Close(closeCtx)
		}()
		store = mongorepo.NewSettingRepository(mc.Database())
		pingers = append(pingers, mc)
	default:
		store = pgrepo.NewSettingRepository(pool)
	}

	limits := service.PagingLimits{DefaultSize: cfg.API.DefaultPageSize, MaxSize: cfg.API.MaxPageSize}
	brandRepo := pgrepo.NewBrandRepository(pool)
	categoryRepo := pgrepo.NewCategoryRepository(pool)
	brands := service.NewBrandService(brandRepo, limits, appLogger)
	categories := service.NewCategoryService(categoryRepo, limits, appLogger)
	products := service.NewProductService(
		pgrepo.NewProductRepository(pool), brandRepo, categoryRepo,
		pgrepo.NewTxManager(pool), limits, appLogger,
	)

	publicURL := cfg.App.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("http://localhost:%d", cfg.App.Port)
	}
	schemes := auth.NewSchemes()
	builders := registry.New[*auth.Schemes]().Add(
		facebook.NewBuilder(store, publicURL, appLogger),
	)
	for _, b := range builders.Sorted() {
		appLogger.Debug().Int("order", b.Order()).Str("builder", fmt.Sprint(b)).Msg("auth builder queued")
	}
	if err := builders.Apply(ctx, schemes); err != nil {
		return fmt.Errorf("auth schemes: %w", err)
	}

	m := metrics.New()
	m.SetSchemes(len(schemes.Names()))

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := handler.NewRouter(ctx, handler.Deps{
		Pinger:     pingers,
		Brands:     brands,
		Categories: categories,
		Products:   products,
		Schemes:    schemes,
		Metrics:    m,
		Logger:     appLogger,
		API:        cfg.API,
	})
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info().
			Str("addr", srv.Addr).
			Str("settings_backend", cfg.Settings.Backend).
			Strs("auth_schemes", schemes.Names()).
			Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
		defer cancel()
		appLogger.Info().Msg("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
