package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/PixelFarm_Go/internal/autosave"
	"github.com/osse101/PixelFarm_Go/internal/bootstrap"
	"github.com/osse101/PixelFarm_Go/internal/building"
	"github.com/osse101/PixelFarm_Go/internal/catalog"
	"github.com/osse101/PixelFarm_Go/internal/concurrency"
	"github.com/osse101/PixelFarm_Go/internal/config"
	"github.com/osse101/PixelFarm_Go/internal/database"
	_ "github.com/osse101/PixelFarm_Go/internal/docs"
	"github.com/osse101/PixelFarm_Go/internal/economy"
	"github.com/osse101/PixelFarm_Go/internal/farm"
	"github.com/osse101/PixelFarm_Go/internal/handler"
	"github.com/osse101/PixelFarm_Go/internal/server"
	"github.com/osse101/PixelFarm_Go/internal/user"
)

// @title PixelFarm API
// @version 1.0
// @description Farming game backend: growth timing, economy transactions and autosave reconciliation.
// @BasePath /
func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := config.CheckEnvSchema(); err != nil {
		return err
	}
	for _, w := range cfg.Warnings() {
		slog.Warn(w)
	}

	handler.InitValidator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}

	if err := database.Migrate(dbPool); err != nil {
		dbPool.Close()
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	if err := bootstrap.SyncCatalog(ctx, repos.Catalog, cfg.CatalogPath); err != nil {
		dbPool.Close()
		return err
	}

	catalogSvc := catalog.NewService(repos.Catalog, cfg.CatalogCacheTTL)
	farmSvc := farm.NewService(repos.Farm, catalogSvc)
	economySvc := economy.NewService(repos.Economy, catalogSvc)
	buildingSvc := building.NewService(repos.Building, catalogSvc)
	userSvc := user.NewService(repos.User, farmSvc)
	autosaveSvc := autosave.NewService(farmSvc, economySvc, userSvc, repos.Processed, concurrency.NewLockManager())

	srv := server.NewServer(server.Options{
		Port:          cfg.Port,
		AllowedOrigin: cfg.CORSAllowedOrigin,
		Version:       cfg.Version,
	}, dbPool, server.Services{
		User:     userSvc,
		Farm:     farmSvc,
		Economy:  economySvc,
		Building: buildingSvc,
		Catalog:  catalogSvc,
		Autosave: autosaveSvc,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Server: srv,
			DBPool: dbPool,
		})
		return nil
	})

	return g.Wait()
}
