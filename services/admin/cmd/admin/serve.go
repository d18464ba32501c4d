package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_admin/pkg/authclient"
	pkgdb "github.com/Skotchmaster/farm_admin/pkg/db"
	"github.com/Skotchmaster/farm_admin/pkg/events"
	"github.com/Skotchmaster/farm_admin/pkg/logging"
	"github.com/Skotchmaster/farm_admin/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/farm_admin/pkg/middleware/logging"

	admincfg "github.com/Skotchmaster/farm_admin/services/admin/internal/config"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/audit"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/httpserver"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/models"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/repo"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/search"
	"github.com/Skotchmaster/farm_admin/services/admin/internal/service"
)

const bodyLimit = "1M"

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := admincfg.Load(*configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func openDB(ctx context.Context, cfg admincfg.ServiceConfig) (*gorm.DB, error) {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := pkgdb.Open(openCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	return db, nil
}

func newPublisher(cfg admincfg.ServiceConfig, l *slog.Logger) (events.Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		l.Info("kafka disabled, events are discarded")
		return events.Nop{}, nil
	}
	return events.NewProducer(cfg.KafkaBrokers)
}

func newIndexer(cfg admincfg.ServiceConfig, l *slog.Logger) (search.Indexer, error) {
	if cfg.ESURL == "" {
		l.Info("elasticsearch disabled, activity is not indexed")
		return search.Nop{}, nil
	}
	client, err := search.NewClient(search.Config{
		URL:      cfg.ESURL,
		User:     cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    cfg.ESIndex,
	})
	if err != nil {
		return nil, err
	}
	return search.NewESIndexer(client, cfg.ESIndex), nil
}

func serve(ctx context.Context, cfg admincfg.ServiceConfig) error {
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = pkgdb.Close(db) }()

	if cfg.DBAutoMigrate {
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("schema migrated")
	}

	pub, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = pub.Close() }()

	idx, err := newIndexer(cfg, logger)
	if err != nil {
		return err
	}

	r := repo.New(db)
	deps := &httpserver.Deps{
		DB:            db,
		Inventory:     &httpserver.InventoryHTTP{Svc: &service.InventoryService{Repo: r, Events: pub}},
		Reviews:       &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: r, Events: pub}},
		Notifications: &httpserver.NotificationHTTP{Svc: &service.NotificationService{Repo: r, Events: pub}},
		Activity:      &httpserver.ActivityHTTP{Svc: &service.ActivityService{Repo: r}},
		Recorder:      audit.NewRecorder(r, pub, idx),
		JWTSecret:     cfg.JWTAccessSecret,
	}
	if cfg.AuthHTTPURL != "" {
		deps.AuthClient = authclient.NewClient(cfg.AuthHTTPURL)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.BodyLimit(bodyLimit))
	e.Use(echomw.Secure())
	e.Use(echomw.CORS())
	if cfg.CSRFEnabled {
		e.Use(csrf.Middleware(csrf.DefaultConfig()))
	}

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("admin listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}

	logger.Info("admin stopped")
	return nil
}
