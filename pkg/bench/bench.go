// Package bench measures interner throughput over synthetic word sets.
//
// Every scenario processes the whole word set once per round. The fastest
// round is reported, so results are comparable across runs on a quiet
// machine.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sumatoshi-tech/interner/pkg/arena"
	"github.com/Sumatoshi-tech/interner/pkg/hashing"
	"github.com/Sumatoshi-tech/interner/pkg/interner"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

// Scenario names.
const (
	ScenarioFillEmpty        = "intern/fill-empty/new"
	ScenarioFillWithCapacity = "intern/fill-empty/with-capacity"
	ScenarioAlreadyFilled    = "intern/already-filled"
	ScenarioGet              = "get/already-filled"
	ScenarioResolve          = "resolve/already-filled"
	ScenarioResolveUnchecked = "resolve-unchecked/already-filled"
	ScenarioIterate          = "iter/already-filled"
)

// Harness defaults.
const (
	DefaultStrings   = 100_000
	DefaultStringLen = 5
	DefaultRounds    = 5
)

// Configuration errors.
var (
	ErrInvalidConfig  = errors.New("bench: strings, string length and rounds must be positive")
	ErrTooManyStrings = errors.New("bench: more strings than the symbol width can represent")
)

// Config sizes a benchmark run.
type Config struct {
	Strings   int
	StringLen int
	Rounds    int

	// Hasher is the hash strategy of every interner. Nil selects the
	// interner default.
	Hasher hashing.Hasher

	// Logger receives one debug record per scenario. Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns the standard workload: 100k words of 5 characters.
func DefaultConfig() Config {
	return Config{
		Strings:   DefaultStrings,
		StringLen: DefaultStringLen,
		Rounds:    DefaultRounds,
	}
}

// Result is the outcome of one scenario.
type Result struct {
	Scenario string
	Ops      int           // Operations per round.
	Best     time.Duration // Fastest round.
	Total    time.Duration // Sum of all rounds.
	Rounds   int

	Durations []time.Duration // Every round in execution order.
}

// OpsPerSec returns the throughput of the fastest round.
func (r Result) OpsPerSec() float64 {
	if r.Best <= 0 {
		return 0
	}

	return float64(r.Ops) / r.Best.Seconds()
}

// NsPerOp returns the latency of one operation in the fastest round.
func (r Result) NsPerOp() float64 {
	if r.Ops == 0 {
		return 0
	}

	return float64(r.Best.Nanoseconds()) / float64(r.Ops)
}

// Recorder receives the throughput of every finished scenario.
type Recorder interface {
	RecordThroughput(ctx context.Context, scenario string, opsPerSec float64)
}

// Scenarios lists the scenario names in execution order.
func Scenarios() []string {
	return []string{
		ScenarioFillEmpty,
		ScenarioFillWithCapacity,
		ScenarioAlreadyFilled,
		ScenarioGet,
		ScenarioResolve,
		ScenarioResolveUnchecked,
		ScenarioIterate,
	}
}

// Run executes every scenario with symbols of width S. rec may be nil.
func Run[S symbol.Symbol[S]](ctx context.Context, cfg Config, rec Recorder) ([]Result, error) {
	if cfg.Strings <= 0 || cfg.StringLen <= 0 || cfg.Rounds <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidConfig, cfg)
	}

	if cfg.Strings > symbol.Capacity[S]() {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyStrings, cfg.Strings, symbol.Capacity[S]())
	}

	words, err := Words(cfg.Strings, cfg.StringLen)
	if err != nil {
		return nil, err
	}

	r := runner[S]{cfg: cfg, words: words}
	results := make([]Result, 0, len(Scenarios()))

	for _, sc := range r.scenarios() {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("bench %s: %w", sc.name, err)
		}

		res := r.measure(sc)
		results = append(results, res)

		if cfg.Logger != nil {
			cfg.Logger.DebugContext(ctx, "bench scenario finished",
				"scenario", res.Scenario,
				"ops", res.Ops,
				"best", res.Best,
				"ops_per_sec", res.OpsPerSec(),
			)
		}

		if rec != nil {
			rec.RecordThroughput(ctx, res.Scenario, res.OpsPerSec())
		}
	}

	return results, nil
}

// --- Internal methods ---.

// sink keeps measured work observable.
var sink int

// fixture is the state a scenario starts from.
type fixture[S symbol.Symbol[S]] struct {
	in   *interner.Interner[S, string, byte]
	syms []S
}

type scenario[S symbol.Symbol[S]] struct {
	name  string
	setup func() fixture[S]
	run   func(fx fixture[S]) int
}

type runner[S symbol.Symbol[S]] struct {
	cfg   Config
	words []string
}

func (r runner[S]) options(capacity int) []interner.Option {
	opts := []interner.Option{interner.WithCapacity(capacity)}
	if r.cfg.Hasher != nil {
		opts = append(opts, interner.WithHasher(r.cfg.Hasher))
	}

	return opts
}

func (r runner[S]) empty() fixture[S] {
	return fixture[S]{in: interner.NewString[S](r.options(0)...)}
}

func (r runner[S]) presized() fixture[S] {
	return fixture[S]{in: interner.NewString[S](r.options(len(r.words))...)}
}

func (r runner[S]) filled() fixture[S] {
	in := interner.NewString[S](r.options(len(r.words))...)
	syms := make([]S, len(r.words))

	for i, w := range r.words {
		syms[i] = in.Intern(w)
	}

	return fixture[S]{in: in, syms: syms}
}

func (r runner[S]) internAll(fx fixture[S]) int {
	var acc int

	for _, w := range r.words {
		sym, _ := fx.in.InternAndHash(w)
		acc += sym.Index()
	}

	return acc
}

func (r runner[S]) scenarios() []scenario[S] {
	return []scenario[S]{
		{name: ScenarioFillEmpty, setup: r.empty, run: func(fx fixture[S]) int {
			var acc int

			for _, w := range r.words {
				acc += fx.in.Intern(w).Index()
			}

			return acc
		}},
		{name: ScenarioFillWithCapacity, setup: r.presized, run: r.internAll},
		{name: ScenarioAlreadyFilled, setup: r.filled, run: r.internAll},
		{name: ScenarioGet, setup: r.filled, run: func(fx fixture[S]) int {
			var acc int

			for _, w := range r.words {
				sym, _ := fx.in.Get(w)
				acc += sym.Index()
			}

			return acc
		}},
		{name: ScenarioResolve, setup: r.filled, run: func(fx fixture[S]) int {
			var acc int

			for _, sym := range fx.syms {
				v, _ := fx.in.Resolve(sym)
				acc += len(v)
			}

			return acc
		}},
		{name: ScenarioResolveUnchecked, setup: r.filled, run: func(fx fixture[S]) int {
			var acc int

			for _, sym := range fx.syms {
				acc += len(fx.in.ResolveUnchecked(sym, arena.AssumeValid))
			}

			return acc
		}},
		{name: ScenarioIterate, setup: r.filled, run: func(fx fixture[S]) int {
			var acc int

			for sym, v := range fx.in.All() {
				acc += sym.Index() + len(v)
			}

			return acc
		}},
	}
}

func (r runner[S]) measure(sc scenario[S]) Result {
	res := Result{
		Scenario:  sc.name,
		Ops:       len(r.words),
		Rounds:    r.cfg.Rounds,
		Durations: make([]time.Duration, 0, r.cfg.Rounds),
	}

	for range r.cfg.Rounds {
		fx := sc.setup()

		start := time.Now()
		sink += sc.run(fx)
		elapsed := time.Since(start)

		res.Total += elapsed
		res.Durations = append(res.Durations, elapsed)
		if res.Best == 0 || elapsed < res.Best {
			res.Best = elapsed
		}
	}

	return res
}
