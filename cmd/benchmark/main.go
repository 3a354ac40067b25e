package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/natevvv/grid-astar/internal/config"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/mapgen"
	p "github.com/natevvv/grid-astar/pkg/path"
	"github.com/natevvv/grid-astar/pkg/slice"
)

func main() {
	configPath := flag.String("config", "config/benchmark.yaml", "YAML benchmark config")
	mapFile := flag.String("map", "", "Benchmark a single map file instead of generated maps")
	targetFile := flag.String("targets", "", "Targets file for -map (distance header, then sx sy ex ey cost hops)")
	useRandomTargets := flag.Bool("random", false, "Create (new) random targets for -map")
	storeTargets := flag.Bool("store", false, "Store targets (when newly generated)")
	amountTargets := flag.Int("n", 0, "How many targets per map, overrides the config")
	stores := flag.String("search", "", "Comma separated node stores, overrides the config")
	cpuProfile := flag.String("cpu", "", "write cpu profile to file")
	flag.Parse()

	cfg, err := config.LoadBenchmark(*configPath)
	if err != nil {
		fatal(err)
	}
	if *amountTargets > 0 {
		cfg.PathsPerMap = *amountTargets
	}
	if *stores != "" {
		cfg.Stores = cfg.Stores[:0]
		for _, name := range strings.Split(*stores, ",") {
			kind, err := p.ParseStoreKind(name)
			if err != nil {
				fatal(err)
			}
			cfg.Stores = append(cfg.Stores, kind)
		}
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	level, err := config.LogLevel(cfg.LogLevel)
	if err != nil {
		fatal(err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	start := time.Now()
	var scenarios []scenario
	if *mapFile != "" {
		m, err := grid.ReadArrayMapFile(*mapFile)
		if err != nil {
			fatal(err)
		}
		scenarios = []scenario{{name: *mapFile, m: m}}
	} else {
		scenarios, err = generateScenarios(context.Background(), cfg)
		if err != nil {
			fatal(err)
		}
	}
	fmt.Printf("[TIME-Import] = %s\n", time.Since(start))

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	b := newBenchmark(cfg)

	// catch interrupt to still show already calculated results
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		b.showResults()
		pprof.StopCPUProfile()
		os.Exit(0)
	}()

	// a targets file fixes the distance of the run
	var fileTargets []target
	if *mapFile != "" && *targetFile != "" {
		readFromFile := !*useRandomTargets
		var fileDistance grid.Distance
		if readFromFile {
			fileTargets, fileDistance, err = readTargets(*targetFile)
			if err != nil {
				fatal(err)
			}
			if cfg.PathsPerMap < len(fileTargets) {
				fileTargets = fileTargets[:cfg.PathsPerMap]
			}
		}
		if readFromFile || *storeTargets {
			if cfg.Distances, err = targetDistances(cfg.Distances, fileDistance, readFromFile); err != nil {
				fatal(err)
			}
		}
	}

	for i, s := range scenarios {
		for _, distance := range cfg.Distances {
			targets := fileTargets
			if targets == nil {
				rng := mapgen.NewRand(cfg.Seed + uint64(i))
				targets = createTargets(cfg.PathsPerMap, s.m, distance, rng)
				if *mapFile != "" && *targetFile != "" && *storeTargets {
					if err := writeTargets(targets, distance, *targetFile); err != nil {
						fatal(err)
					}
				}
			}
			if err := b.run(s, distance, targets); err != nil {
				fatal(err)
			}
		}
	}
	// normal termination, show results
	b.showResults()
}

func fatal(err error) {
	slog.Error("benchmark failed", "err", err)
	os.Exit(1)
}

type scenario struct {
	name string
	m    *grid.ArrayMap
}

// generateScenarios creates every map of the parameter grid in parallel
func generateScenarios(ctx context.Context, cfg config.Benchmark) ([]scenario, error) {
	var scenarios []scenario
	for _, size := range cfg.MapSizes {
		for _, generator := range cfg.Generators {
			for i := 0; i < cfg.MapsPerSize; i++ {
				scenarios = append(scenarios, scenario{
					name: fmt.Sprintf("%s %dx%d #%d", generator, size, size, i),
					m:    grid.NewArrayMap(size, size),
				})
			}
		}
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	index := 0
	for _, size := range cfg.MapSizes {
		for _, name := range cfg.Generators {
			generate, err := mapgen.ByName(name, size)
			if err != nil {
				return nil, err
			}
			for i := 0; i < cfg.MapsPerSize; i++ {
				s := scenarios[index]
				seed := cfg.Seed + uint64(index)
				g.Go(func() error {
					generate(s.m, mapgen.NewRand(seed))
					if s.m.WalkableCount() < 2 {
						return fmt.Errorf("map %s has no walkable pairs", s.name)
					}
					return nil
				})
				index++
			}
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scenarios, nil
}

type measurement struct {
	completed int
	runtime   time.Duration
	kpis      p.SearchKPIs

	invalidResults []string
	invalidCosts   []string
	differentHops  int
	differentPaths int
}

type benchmark struct {
	cfg config.Benchmark

	mu      sync.Mutex
	order   []string
	results map[string]*measurement
}

func newBenchmark(cfg config.Benchmark) *benchmark {
	return &benchmark{cfg: cfg, results: make(map[string]*measurement)}
}

func (b *benchmark) measurement(key string) *measurement {
	if m, ok := b.results[key]; ok {
		return m
	}
	m := &measurement{}
	b.results[key] = m
	b.order = append(b.order, key)
	return m
}

// run benchmarks every configured store and heuristic on the targets
func (b *benchmark) run(s scenario, distance grid.Distance, targets []target) error {
	for _, heuristicName := range b.cfg.Heuristics {
		heuristic, err := p.HeuristicByName(heuristicName, distance)
		if err != nil {
			return fmt.Errorf("benchmark %s: %w", s.name, err)
		}
		admissible := strings.EqualFold(heuristicName, "default") || heuristicName == "" || distance == grid.MANHATTAN

		var firstPaths [][]grid.Coord
		for storeIndex, kind := range b.cfg.Stores {
			navigator := p.NewAStar(s.m, distance, p.WithStore(kind), p.WithHeuristic(heuristic))
			key := fmt.Sprintf("%-22s %-9s %-7s %-10s", s.name, distance, heuristicName, kind)

			for i, t := range targets {
				start := time.Now()
				path := navigator.ShortestPath(t.origin, t.destination, true)
				elapsed := time.Since(start)

				kpis := navigator.KPIs()
				slog.Debug("search", "case", i, "key", key, "time", elapsed, "pops", kpis.PqPops, "updates", kpis.PqUpdates, "relaxed", kpis.RelaxedEdges, "attempts", kpis.RelaxationAttempts)

				b.mu.Lock()
				m := b.measurement(key)
				m.completed++
				m.runtime += elapsed
				m.kpis.Add(kpis)
				b.validate(m, i, t, path, navigator.TieBreakerFactor(), admissible)
				if path != nil {
					coords := path.Coords()
					if storeIndex == 0 {
						firstPaths = append(firstPaths, coords)
					} else if i < len(firstPaths) && firstPaths[i] != nil && slice.Compare(firstPaths[i], coords) != 0 {
						m.differentPaths++
					}
				} else if storeIndex == 0 {
					firstPaths = append(firstPaths, nil)
				}
				b.mu.Unlock()
			}
		}
	}
	return nil
}

func (b *benchmark) validate(m *measurement, i int, t target, path *p.Path, factor float64, admissible bool) {
	if !b.cfg.ValidateResults {
		return
	}
	if (path == nil) != (t.hops < 0) {
		m.invalidResults = append(m.invalidResults, fmt.Sprintf("Case %v (%v -> %v) has invalid result, path found: %v", i, t.origin, t.destination, path != nil))
		return
	}
	if path == nil {
		return
	}
	if path.Start() != t.origin || path.End() != t.destination {
		m.invalidResults = append(m.invalidResults, fmt.Sprintf("Case %v (%v -> %v) has invalid endpoints %v -> %v", i, t.origin, t.destination, path.Start(), path.End()))
	}
	// with the tie-breaking factor the cost is bounded by factor times the optimum
	const epsilon = 1e-9
	if admissible && (path.Cost() < t.cost-epsilon || path.Cost() > t.cost*factor+epsilon) {
		m.invalidCosts = append(m.invalidCosts, fmt.Sprintf("Case %v (%v -> %v) has invalid cost. Has: %v, Reference: %v, Difference: %v", i, t.origin, t.destination, path.Cost(), t.cost, path.Cost()-t.cost))
	}
	if path.LengthWithStart() != t.hops {
		m.differentHops++
	}
}

func (b *benchmark) showResults() {
	b.mu.Lock()
	defer b.mu.Unlock()

	fmt.Printf("%-52s %10s %9s %9s %9s %9s %7s %7s %7s\n", "scenario", "avg ms", "pops", "updates", "attempts", "relaxed", "invalid", "hops≠", "paths≠")
	for _, key := range b.order {
		m := b.results[key]
		if m.completed == 0 {
			continue
		}
		n := m.completed
		fmt.Printf("%-52s %10.4f %9d %9d %9d %9d %7d %7d %7d\n",
			key,
			float64(m.runtime.Nanoseconds())/float64(n)/1e6,
			m.kpis.PqPops/n,
			m.kpis.PqUpdates/n,
			m.kpis.RelaxationAttempts/n,
			m.kpis.RelaxedEdges/n,
			len(m.invalidResults)+len(m.invalidCosts),
			m.differentHops,
			m.differentPaths,
		)
		for _, line := range m.invalidResults {
			fmt.Printf("    %s\n", line)
		}
		for _, line := range m.invalidCosts {
			fmt.Printf("    %s\n", line)
		}
	}
}
