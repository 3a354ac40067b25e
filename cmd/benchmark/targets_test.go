package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natevvv/grid-astar/internal/config"
	"github.com/natevvv/grid-astar/pkg/grid"
	"github.com/natevvv/grid-astar/pkg/mapgen"
)

func TestTargetsRoundTrip(t *testing.T) {
	m := grid.NewArrayMap(40, 40)
	mapgen.RandomRooms(m, mapgen.NewRand(3), 8, 3, 8)

	targets := createTargets(10, m, grid.EUCLIDEAN, mapgen.NewRand(4))
	require.Len(t, targets, 10)

	filename := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, writeTargets(targets, grid.EUCLIDEAN, filename))
	read, distance, err := readTargets(filename)
	require.NoError(t, err)
	assert.Equal(t, grid.EUCLIDEAN, distance)
	require.Len(t, read, len(targets))
	for i := range targets {
		assert.Equal(t, targets[i].origin, read[i].origin)
		assert.Equal(t, targets[i].destination, read[i].destination)
		assert.Equal(t, targets[i].hops, read[i].hops)
		assert.InDelta(t, targets[i].cost, read[i].cost, 1e-9)
	}
}

func TestBenchmarkValidatesAgainstReference(t *testing.T) {
	cfg := config.DefaultBenchmark()
	cfg.MapSizes = []int{30}
	cfg.PathsPerMap = 15

	scenarios, err := generateScenarios(t.Context(), cfg)
	require.NoError(t, err)
	require.Len(t, scenarios, len(cfg.Generators))

	b := newBenchmark(cfg)
	for i, s := range scenarios {
		for _, distance := range cfg.Distances {
			require.NoError(t, b.run(s, distance, createTargets(cfg.PathsPerMap, s.m, distance, mapgen.NewRand(uint64(i)))))
		}
	}

	require.NotEmpty(t, b.order)
	for _, key := range b.order {
		m := b.results[key]
		assert.Equal(t, cfg.PathsPerMap, m.completed, key)
		assert.Empty(t, m.invalidResults, key)
		assert.Empty(t, m.invalidCosts, key)
		assert.Zero(t, m.differentPaths, key)
	}
}

func TestTargetsFileFixesDistance(t *testing.T) {
	m := grid.NewOpenArrayMap(20, 20)
	s := scenario{name: "open", m: m}
	filename := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, writeTargets(createTargets(20, m, grid.MANHATTAN, mapgen.NewRand(2)), grid.MANHATTAN, filename))

	targets, fileDistance, err := readTargets(filename)
	require.NoError(t, err)
	require.Len(t, targets, 20)
	assert.Equal(t, grid.MANHATTAN, fileDistance)

	cfg := config.DefaultBenchmark()
	distances, err := targetDistances(cfg.Distances, fileDistance, true)
	require.NoError(t, err)
	assert.Equal(t, []grid.Distance{grid.MANHATTAN}, distances)

	b := newBenchmark(cfg)
	for _, distance := range distances {
		require.NoError(t, b.run(s, distance, targets))
	}
	require.Len(t, b.order, len(cfg.Heuristics)*len(cfg.Stores))
	for _, key := range b.order {
		m := b.results[key]
		assert.Equal(t, 20, m.completed, key)
		assert.Empty(t, m.invalidResults, key)
		assert.Empty(t, m.invalidCosts, key)
		assert.Zero(t, m.differentHops, key)
	}
}

func TestTargetDistances(t *testing.T) {
	all := grid.Distances()

	_, err := targetDistances(all, grid.CHEBYSHEV, false)
	assert.ErrorIs(t, err, errTargetDistances, "stored targets need a single distance")

	distances, err := targetDistances([]grid.Distance{grid.EUCLIDEAN}, grid.MANHATTAN, false)
	require.NoError(t, err)
	assert.Equal(t, []grid.Distance{grid.EUCLIDEAN}, distances)

	_, err = targetDistances([]grid.Distance{grid.EUCLIDEAN}, grid.MANHATTAN, true)
	assert.ErrorIs(t, err, errTargetDistances)
}

func TestReadTargetsWithoutDistance(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, os.WriteFile(filename, []byte("# no header\n1 1 2 2 1.5 3\n"), 0o644))
	_, _, err := readTargets(filename)
	assert.ErrorIs(t, err, errMissingDistance)

	require.NoError(t, os.WriteFile(filename, []byte("distance HEX\n"), 0o644))
	_, _, err = readTargets(filename)
	assert.ErrorIs(t, err, grid.ErrUnknownDistance)
}

func TestRunRejectsUnknownHeuristic(t *testing.T) {
	cfg := config.DefaultBenchmark()
	cfg.Heuristics = []string{"guess"}
	m := grid.NewOpenArrayMap(5, 5)
	b := newBenchmark(cfg)
	err := b.run(scenario{name: "open", m: m}, grid.MANHATTAN, createTargets(3, m, grid.MANHATTAN, mapgen.NewRand(1)))
	assert.Error(t, err)
	assert.Empty(t, b.order)
}
