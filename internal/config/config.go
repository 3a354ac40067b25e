package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/mapgen"
	"github.com/natevvv/grid-astar/pkg/path"
)

var ErrInvalidConfig = errors.New("invalid config")

// Search holds the engine settings shared by the server and the benchmark.
type Search struct {
	Store      path.StoreKind `yaml:"store"`
	Distance   grid.Distance  `yaml:"distance"`
	Heuristic  string         `yaml:"heuristic"` // "default" or "fast"
	UseWeights bool           `yaml:"use_weights"`
	DebugLevel int            `yaml:"debug_level"` // 0 silent, 1 per search, 2 per settled node

	AssumeEndpointsWalkable bool `yaml:"assume_endpoints_walkable"`
}

// DefaultSearch returns the dense store with euclidean distance.
func DefaultSearch() Search {
	return Search{
		Store:                   path.DenseArray,
		Distance:                grid.EUCLIDEAN,
		Heuristic:               "default",
		AssumeEndpointsWalkable: true,
	}
}

// Options converts the settings into engine options. weights is only used with UseWeights.
func (s Search) Options(weights grid.WeightMap) ([]path.Option, error) {
	heuristic, err := path.HeuristicByName(s.Heuristic, s.Distance)
	if err != nil {
		return nil, err
	}
	options := []path.Option{path.WithStore(s.Store), path.WithHeuristic(heuristic), path.WithDebugLevel(s.DebugLevel)}
	if s.UseWeights && weights != nil {
		options = append(options, path.WithWeights(weights))
	}
	return options, nil
}

// Server holds all configuration for the routing server.
type Server struct {
	// Network
	BindAddress  string        `yaml:"bind_address"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MetricsPath  string        `yaml:"metrics_path"`

	LogLevel string `yaml:"log_level"`

	// Map: loaded from MapFile, or generated if MapFile is empty
	MapFile   string `yaml:"map_file"`
	Generator string `yaml:"generator"`
	Size      int    `yaml:"size"`
	Seed      uint64 `yaml:"seed"`

	Search Search `yaml:"search"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		BindAddress:  "0.0.0.0",
		Port:         8081,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		MetricsPath:  "/metrics",
		LogLevel:     "info",
		Generator:    mapgen.RANDROOMS,
		Size:         250,
		Seed:         1,
		Search:       DefaultSearch(),
	}
}

func (s Server) Address() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.Port)
}

func (s Server) Validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, s.Port)
	}
	if s.MapFile == "" && s.Size <= 0 {
		return fmt.Errorf("%w: map size %d", ErrInvalidConfig, s.Size)
	}
	if _, err := LogLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// Benchmark holds the parameter grid of a benchmark run. Every combination of
// size, generator, distance and heuristic is run for every store.
type Benchmark struct {
	MapSizes        []int            `yaml:"map_sizes"`
	Generators      []string         `yaml:"generators"`
	Distances       []grid.Distance  `yaml:"distances"`
	Heuristics      []string         `yaml:"heuristics"`
	Stores          []path.StoreKind `yaml:"stores"`
	MapsPerSize     int              `yaml:"maps_per_size"`
	PathsPerMap     int              `yaml:"paths_per_map"`
	Seed            uint64           `yaml:"seed"`
	ValidateResults bool             `yaml:"validate"`
	Workers         int              `yaml:"workers"`
	LogLevel        string           `yaml:"log_level"`
}

// DefaultBenchmark returns the full parameter grid.
func DefaultBenchmark() Benchmark {
	return Benchmark{
		MapSizes:        []int{50, 100, 250, 500},
		Generators:      mapgen.Names(),
		Distances:       grid.Distances(),
		Heuristics:      []string{"default", "fast"},
		Stores:          path.StoreKinds(),
		MapsPerSize:     1,
		PathsPerMap:     100,
		Seed:            1,
		ValidateResults: true,
		Workers:         4,
		LogLevel:        "info",
	}
}

func (b Benchmark) Validate() error {
	if len(b.MapSizes) == 0 || len(b.Generators) == 0 || len(b.Distances) == 0 || len(b.Stores) == 0 || len(b.Heuristics) == 0 {
		return fmt.Errorf("%w: empty parameter list", ErrInvalidConfig)
	}
	for _, size := range b.MapSizes {
		if size <= 0 {
			return fmt.Errorf("%w: map size %d", ErrInvalidConfig, size)
		}
	}
	for _, name := range b.Generators {
		if _, err := mapgen.ByName(name, b.MapSizes[0]); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	for _, name := range b.Heuristics {
		if _, err := path.HeuristicByName(name, grid.MANHATTAN); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if b.PathsPerMap <= 0 || b.MapsPerSize <= 0 {
		return fmt.Errorf("%w: paths per map %d, maps per size %d", ErrInvalidConfig, b.PathsPerMap, b.MapsPerSize)
	}
	if b.Workers <= 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, b.Workers)
	}
	return nil
}

// LogLevel parses debug, info, warn or error.
func LogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, name)
	}
	return level, nil
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadBenchmark loads benchmark config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadBenchmark(path string) (Benchmark, error) {
	cfg := DefaultBenchmark()
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
