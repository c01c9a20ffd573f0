package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fungccc/HKMortgage2026/internal/api"
	"github.com/fungccc/HKMortgage2026/internal/cache"
	"github.com/fungccc/HKMortgage2026/internal/calculation"
	"github.com/fungccc/HKMortgage2026/internal/config"
	"github.com/fungccc/HKMortgage2026/internal/logging"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (settings come from HKMORTGAGE_* environment variables)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg config.ServerConfig, logger *zap.Logger) error {
	sim, err := buildSimulator(cfg)
	if err != nil {
		return err
	}
	sim.SetLogger(logger.Sugar())

	resultCache, closeCache, err := buildCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	svc, err := api.NewService(sim, resultCache, logger)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      api.NewRouter(svc, cfg, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("hkmortgage listening", logging.Op("serve"),
			zap.String("addr", cfg.ListenAddr), zap.String("cache", resultCache.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", logging.Op("serve"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildSimulator(cfg config.ServerConfig) (*calculation.MortgageSimulator, error) {
	if cfg.TablesFile == "" {
		return calculation.NewMortgageSimulator(), nil
	}
	doc, err := config.NewInputParser().LoadFromFile(cfg.TablesFile)
	if err != nil {
		return nil, err
	}
	return config.NewSimulator(doc)
}

// buildCache picks Redis when a URL is configured, the in-process LRU otherwise.
func buildCache(ctx context.Context, cfg config.ServerConfig) (cache.ResultCache, func(), error) {
	if cfg.RedisURL == "" {
		return cache.NewMemoryCache(cfg.CacheSize, cfg.CacheTTL), func() {}, nil
	}
	rdb, err := cache.DialRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRedisCache(rdb, cfg.CacheTTL), func() { rdb.Close() }, nil
}
