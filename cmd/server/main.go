package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"venuestore/internal/config"
	"venuestore/internal/handler"
	"venuestore/internal/hub"
	"venuestore/internal/logger"
	"venuestore/internal/repository/sqlite"
	"venuestore/internal/service"
	"venuestore/internal/store"
	"venuestore/internal/watcher"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	configPath := flag.String("config", "", "config file path (default: search path)")
	seedPath := flag.String("seed", "", "fixture file loaded on startup (overrides config)")
	hashToken := flag.String("hash-token", "", "print the bcrypt hash of an admin token and exit")
	flag.Parse()

	if *hashToken != "" {
		hash, err := handler.HashToken(*hashToken, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *seedPath != "" {
		cfg.Seed.Path = *seedPath
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, path, log); err != nil {
		log.Error("server exited", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func run(cfg *config.Config, configPath string, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting venuestore", "addr", cfg.Server.Addr, "config", configPath)

	st := store.New(store.WithPageSizes(cfg.Pagination.DefaultSize, cfg.Pagination.MaxSize))
	eventBus := service.NewEventBus()

	opts := []service.Option{service.WithLogger(log)}
	if cfg.Audit.Path != "" {
		repo, err := sqlite.New(cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("open audit db: %w", err)
		}
		defer repo.Close()
		log.Info("audit trail enabled", "path", cfg.Audit.Path)
		opts = append(opts, service.WithAudit(repo))
	}
	catalog := service.NewCatalogService(st, eventBus, opts...)

	if cfg.Seed.Path != "" {
		strategy := service.StrategyMerge
		if cfg.Seed.Replace {
			strategy = service.StrategyReplace
		}
		if err := importSeed(ctx, log, catalog, cfg.Seed.Path, strategy); err != nil {
			return err
		}
	}

	sseHub := hub.New(log)
	verifier := handler.NewTokenVerifier(cfg.Admin.TokenHash)
	if !verifier.Enabled() {
		log.Warn("admin token not configured, mutating routes are open")
	}

	mux := http.NewServeMux()
	handler.NewCatalogHandler(catalog, log).Register(mux)
	handler.NewAdminHandler(catalog, log, sseHub.ClientCount).Register(mux)
	mux.Handle("GET /events", sseHub)

	server := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: handler.Chain(mux,
			handler.Recover(log),
			handler.Logger(log),
			handler.CORS,
			handler.RequireAdmin(verifier, log),
		),
		ReadTimeout:  cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  cfg.Server.IdleTimeout.Duration(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sseHub.Run(gctx)
	})

	// Forward committed changes to SSE clients
	notifications := make(chan service.Notification, 100)
	eventBus.Subscribe(notifications)
	g.Go(func() error {
		defer eventBus.Unsubscribe(notifications)
		for {
			select {
			case <-gctx.Done():
				return nil
			case n := <-notifications:
				sseHub.Broadcast(string(n.Type), n.Payload)
			}
		}
	})

	if cfg.Watch {
		r := &reloader{
			log:        log,
			catalog:    catalog,
			verifier:   verifier,
			configPath: configPath,
			seedPath:   cfg.Seed.Path,
		}
		if paths := r.paths(); len(paths) > 0 {
			w := watcher.New(log, func(path string) { r.apply(gctx, path) }, paths...)
			g.Go(func() error {
				return w.Watch(gctx)
			})
		}
	}

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func importSeed(ctx context.Context, log *logger.Logger, catalog *service.CatalogService, path, strategy string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	start := time.Now()
	if _, err := catalog.Import(ctx, f, formatOf(path), strategy); err != nil {
		return fmt.Errorf("import seed %s: %w", path, err)
	}
	log.Info("seed loaded", "path", path, "duration", time.Since(start))
	return nil
}
