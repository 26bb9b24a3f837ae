// Package profile measures the allocation behavior and memory overhead of
// interners filled with growing word sets.
//
// Each step builds a fresh interner, interns the first n words, shrinks it
// and counts heap allocations and frees across that sequence. Overhead is
// the memory the interner retains relative to the raw content bytes.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/Sumatoshi-tech/interner/pkg/hashing"
	"github.com/Sumatoshi-tech/interner/pkg/interner"
	"github.com/Sumatoshi-tech/interner/pkg/persist"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

// Harness defaults.
const (
	DefaultWords   = 100_000
	DefaultSteps   = 10
	DefaultWordLen = 20
)

// Errors.
var (
	ErrInvalidConfig    = errors.New("profile: words, steps and word length must be positive")
	ErrTooManyWords     = errors.New("profile: more words than the symbol width can represent")
	ErrLengthMismatch   = errors.New("profile: interner length does not match the word count")
	ErrOverheadExceeded = errors.New("profile: memory overhead above threshold")
	ErrMemoryExceeded   = errors.New("profile: retained memory above threshold")
)

// Config sizes a profiling run. Step i interns Words*(i+1) words.
type Config struct {
	Words   int
	Steps   int
	WordLen int

	// Hasher is the hash strategy of every interner. Nil selects the
	// interner default.
	Hasher hashing.Hasher

	// Logger receives one debug record per step. Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns the standard sequence of 100k to 1M words.
func DefaultConfig() Config {
	return Config{Words: DefaultWords, Steps: DefaultSteps, WordLen: DefaultWordLen}
}

// Sample is the measurement of one step.
type Sample struct {
	Words          int
	Allocations    uint64 // Heap objects allocated.
	Frees          uint64 // Heap objects freed.
	AllocatedBytes uint64 // Cumulative bytes requested from the heap.
	RetainedBytes  int    // Bytes the interner holds after shrinking.
	IdealBytes     int    // Raw content bytes.
}

// Overhead returns retained bytes as a multiple of the ideal.
func (s Sample) Overhead() float64 {
	if s.IdealBytes == 0 {
		return 0
	}

	return float64(s.RetainedBytes) / float64(s.IdealBytes)
}

// Report aggregates every step of a run.
type Report struct {
	Symbol  string // Symbol width name.
	Samples []Sample
}

// MinOverhead returns the smallest overhead across samples.
func (r Report) MinOverhead() float64 {
	return r.fold(func(s Sample) float64 { return s.Overhead() }, func(a, b float64) bool { return a < b })
}

// MaxOverhead returns the largest overhead across samples.
func (r Report) MaxOverhead() float64 {
	return r.fold(func(s Sample) float64 { return s.Overhead() }, func(a, b float64) bool { return a > b })
}

// PeakRetained returns the largest retained size across samples.
func (r Report) PeakRetained() int {
	return int(r.fold(func(s Sample) float64 { return float64(s.RetainedBytes) }, func(a, b float64) bool { return a > b }))
}

// MaxAllocations returns the largest allocation count across samples.
func (r Report) MaxAllocations() uint64 {
	var peak uint64
	for _, s := range r.Samples {
		peak = max(peak, s.Allocations)
	}

	return peak
}

// MaxFrees returns the largest free count across samples.
func (r Report) MaxFrees() uint64 {
	var peak uint64
	for _, s := range r.Samples {
		peak = max(peak, s.Frees)
	}

	return peak
}

// Check compares the report with thresholds. Zero disables a threshold.
func (r Report) Check(maxOverhead float64, maxMemory uint64) error {
	var errs []error

	if maxOverhead > 0 && r.MaxOverhead() > maxOverhead {
		errs = append(errs, fmt.Errorf("%w: %.2f > %.2f", ErrOverheadExceeded, r.MaxOverhead(), maxOverhead))
	}

	if maxMemory > 0 && uint64(r.PeakRetained()) > maxMemory {
		errs = append(errs, fmt.Errorf("%w: %d > %d bytes", ErrMemoryExceeded, r.PeakRetained(), maxMemory))
	}

	return errors.Join(errs...)
}

// Words returns n words of exactly wordLen characters: the decimal index
// right-aligned and padded with spaces.
func Words(n, wordLen int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("%*d", wordLen, i)
	}

	return words
}

// Run profiles every step with symbols of width S.
func Run[S symbol.Symbol[S]](ctx context.Context, cfg Config) (Report, error) {
	if cfg.Words <= 0 || cfg.Steps <= 0 || cfg.WordLen <= 0 {
		return Report{}, fmt.Errorf("%w: %+v", ErrInvalidConfig, cfg)
	}

	total := cfg.Words * cfg.Steps
	if total > symbol.Capacity[S]() {
		return Report{}, fmt.Errorf("%w: %d > %d", ErrTooManyWords, total, symbol.Capacity[S]())
	}

	words := Words(total, cfg.WordLen)
	report := Report{Symbol: persist.WidthName[S](), Samples: make([]Sample, 0, cfg.Steps)}

	for step := range cfg.Steps {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("profile step %d: %w", step, err)
		}

		sample, err := measure[S](words[:cfg.Words*(step+1)], cfg.Hasher)
		if err != nil {
			return report, err
		}

		report.Samples = append(report.Samples, sample)

		if cfg.Logger != nil {
			cfg.Logger.DebugContext(ctx, "profile step finished",
				"words", sample.Words,
				"allocations", sample.Allocations,
				"frees", sample.Frees,
				"overhead", sample.Overhead(),
			)
		}
	}

	return report, nil
}

// --- Internal methods ---.

func (r Report) fold(value func(Sample) float64, better func(a, b float64) bool) float64 {
	var (
		best float64
		set  bool
	)

	for _, s := range r.Samples {
		v := value(s)
		if !set || better(v, best) {
			best, set = v, true
		}
	}

	return best
}

func measure[S symbol.Symbol[S]](words []string, hasher hashing.Hasher) (Sample, error) {
	var opts []interner.Option
	if hasher != nil {
		opts = append(opts, interner.WithHasher(hasher))
	}

	var ideal int
	for _, w := range words {
		ideal += len(w)
	}

	var before, after runtime.MemStats

	runtime.GC()
	runtime.ReadMemStats(&before)

	in := interner.NewString[S](opts...)
	for _, w := range words {
		in.Intern(w)
	}

	in.ShrinkToFit()

	runtime.GC()
	runtime.ReadMemStats(&after)

	if in.Len() != len(words) {
		return Sample{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, in.Len(), len(words))
	}

	sample := Sample{
		Words:          len(words),
		Allocations:    after.Mallocs - before.Mallocs,
		Frees:          after.Frees - before.Frees,
		AllocatedBytes: after.TotalAlloc - before.TotalAlloc,
		RetainedBytes:  in.Stats().AllocatedBytes(),
		IdealBytes:     ideal,
	}

	runtime.KeepAlive(in)

	return sample, nil
}
