package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantpane/quantpane/pkg/cache"
	"github.com/quantpane/quantpane/pkg/config"
	"github.com/quantpane/quantpane/pkg/pipeline"
	"github.com/quantpane/quantpane/pkg/store"

	"github.com/quantpane/quantpane/internal/server"
)

// shutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout API server",
		Long: `Run the layout API server.

The server exposes the layout endpoints (/v1/layout/solve, /v1/layout/resolve)
and CRUD routes for pages, charts, partners, events, and sync jobs.

Backends come from the config file: MongoDB for persistence when mongo.uri
is set (in-memory otherwise), Redis for the shared layout cache when
redis.addr is set (local file cache otherwise).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, addr)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path (default: $"+config.EnvConfigPath+")")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe wires the backends and serves until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close(context.Background())

	layoutCache, keyer, err := c.newServerCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(layoutCache, keyer, c.Logger)
	defer runner.Close()

	srv := server.New(st, runner, cfg.Solver, c.Logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Serving layout API", "addr", cfg.Server.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newStore picks MongoDB when configured, the in-memory store otherwise.
func (c *CLI) newStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.Mongo.URI == "" {
		c.Logger.Warn("No mongo.uri configured, entities are stored in memory")
		return store.NewMemoryStore(), nil
	}
	c.Logger.Info("Connecting to MongoDB", "database", cfg.Mongo.Database)
	return store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
}

// newServerCache picks Redis when configured, the local file cache otherwise.
// Redis keys are scoped by app name since the instance may be shared.
func (c *CLI) newServerCache(ctx context.Context, cfg config.Config) (cache.Cache, cache.Keyer, error) {
	if cfg.Cache.Disabled {
		return cache.NewNullCache(), nil, nil
	}

	if cfg.Redis.Addr != "" {
		c.Logger.Info("Connecting to Redis", "addr", cfg.Redis.Addr)
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName), nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil, nil
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}
