package bench

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/interner/pkg/hashing"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

type recorder struct {
	mu        sync.Mutex
	scenarios []string
}

func (r *recorder) RecordThroughput(_ context.Context, scenario string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scenarios = append(r.scenarios, scenario)
}

func smallConfig() Config {
	return Config{Strings: 500, StringLen: 3, Rounds: 2, Hasher: hashing.FNV1a{}}
}

func TestRun_AllScenarios(t *testing.T) {
	t.Parallel()

	rec := &recorder{}

	results, err := Run[symbol.Default](context.Background(), smallConfig(), rec)
	require.NoError(t, err)
	require.Len(t, results, len(Scenarios()))

	for i, res := range results {
		assert.Equal(t, Scenarios()[i], res.Scenario)
		assert.Equal(t, 500, res.Ops)
		assert.Equal(t, 2, res.Rounds)
		assert.GreaterOrEqual(t, res.Total, res.Best)
		assert.Len(t, res.Durations, 2)
		assert.GreaterOrEqual(t, res.Median(), res.Best)
	}

	assert.Equal(t, Scenarios(), rec.scenarios)
}

func TestRun_U16(t *testing.T) {
	t.Parallel()

	results, err := Run[symbol.U16](context.Background(), smallConfig(), nil)
	require.NoError(t, err)
	assert.Len(t, results, len(Scenarios()))

	cfg := smallConfig()
	cfg.Strings = symbol.Capacity[symbol.U16]() + 1

	_, err = Run[symbol.U16](context.Background(), cfg, nil)
	require.ErrorIs(t, err, ErrTooManyStrings)
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	for _, cfg := range []Config{
		{Strings: 0, StringLen: 3, Rounds: 1},
		{Strings: 10, StringLen: 0, Rounds: 1},
		{Strings: 10, StringLen: 3, Rounds: 0},
	} {
		_, err := Run[symbol.Default](context.Background(), cfg, nil)
		require.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestRun_WordSpace(t *testing.T) {
	t.Parallel()

	cfg := smallConfig()
	cfg.StringLen = 1

	_, err := Run[symbol.Default](context.Background(), cfg, nil)
	require.ErrorIs(t, err, ErrWordSpace)
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run[symbol.Default](ctx, smallConfig(), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestResult_Rates(t *testing.T) {
	t.Parallel()

	res := Result{Ops: 1000, Best: time.Millisecond}
	assert.InDelta(t, 1_000_000, res.OpsPerSec(), 1e-6)
	assert.InDelta(t, 1000, res.NsPerOp(), 1e-6)

	assert.Zero(t, Result{}.OpsPerSec())
	assert.Zero(t, Result{}.NsPerOp())
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, 100_000, cfg.Strings)
	assert.Equal(t, 5, cfg.StringLen)
	assert.Positive(t, cfg.Rounds)
}

func sampleResults() []Result {
	return []Result{
		{Scenario: ScenarioFillEmpty, Ops: 1000, Best: time.Millisecond, Total: 2 * time.Millisecond, Rounds: 2},
		{Scenario: ScenarioGet, Ops: 1000, Best: 500 * time.Microsecond, Total: time.Millisecond, Rounds: 2},
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, RenderTable(&buf, sampleResults()))

	out := buf.String()
	assert.Contains(t, out, ScenarioFillEmpty)
	assert.Contains(t, out, ScenarioGet)
	assert.Contains(t, out, "1,000,000")
	assert.Contains(t, out, "2,000,000")
	assert.Contains(t, strings.ToLower(out), "total: 2 scenarios")
}

func TestRenderChart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, RenderChart(&buf, sampleResults()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<!DOCTYPE html>") || strings.Contains(out, "<html"))
	assert.Contains(t, out, chartTitle)
	assert.Contains(t, out, ScenarioGet)
}

func TestResult_RoundStats(t *testing.T) {
	t.Parallel()

	odd := Result{Durations: []time.Duration{3, 1, 2}, Total: 6}
	assert.Equal(t, time.Duration(2), odd.Median())

	even := Result{Durations: []time.Duration{4, 1, 3, 2}, Total: 10}
	assert.Equal(t, time.Duration(2), even.Median())

	spread := Result{Durations: []time.Duration{2, 4, 4, 4, 5, 5, 7, 9}, Total: 40}
	assert.Equal(t, time.Duration(2), spread.StdDev())

	assert.Zero(t, Result{}.Median())
	assert.Zero(t, Result{}.StdDev())
}
