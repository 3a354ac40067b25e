package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/natevvv/grid-astar/internal/config"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/mapgen"
	"github.com/natevvv/grid-astar/pkg/path"
	"github.com/natevvv/grid-astar/pkg/routing"
	"github.com/natevvv/grid-astar/pkg/server/openapi_server"
)

const ConfigPath = "config/server.yaml"

func main() {
	configPath := flag.String("config", ConfigPath, "YAML config file")
	mapFile := flag.String("map", "", "grid map file, overrides the config")
	port := flag.Int("port", 0, "listen port, overrides the config")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	cfgPath := *configPath
	if p := os.Getenv("GRID_ASTAR_CONFIG"); p != "" {
		cfgPath = p
	}
	if err := run(ctx, cfgPath, *mapFile, *port); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath, mapFile string, port int) error {
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if mapFile != "" {
		cfg.MapFile = mapFile
	}
	if port != 0 {
		cfg.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := config.LogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	slog.Info("config loaded", "bind", cfg.BindAddress, "port", cfg.Port, "store", cfg.Search.Store, "distance", cfg.Search.Distance)

	m, err := loadMap(cfg)
	if err != nil {
		return err
	}
	slog.Info("map ready", "width", m.Width(), "height", m.Height(), "walkable", m.WalkableCount(), "weighted", m.HasWeights())

	options, err := cfg.Search.Options(m)
	if err != nil {
		return fmt.Errorf("search config: %w", err)
	}
	options = append(options, path.WithLogger(logger))
	router := routing.NewRouter(m, cfg.Search.Distance, options...)
	router.SetNavigator(cfg.Search.Store.String())

	service := openapi_server.NewDefaultApiService(router, cfg.Search.AssumeEndpointsWalkable, logger)
	handler := openapi_server.NewRouter(openapi_server.NewDefaultApiController(service))
	handler.Handle(cfg.MetricsPath, promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting http server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func loadMap(cfg config.Server) (*grid.ArrayMap, error) {
	if cfg.MapFile != "" {
		m, err := grid.ReadArrayMapFile(cfg.MapFile)
		if err != nil {
			return nil, fmt.Errorf("loading map: %w", err)
		}
		return m, nil
	}

	generator, err := mapgen.ByName(cfg.Generator, cfg.Size)
	if err != nil {
		return nil, err
	}
	m := grid.NewArrayMap(cfg.Size, cfg.Size)
	generator(m, mapgen.NewRand(cfg.Seed))
	return m, nil
}
