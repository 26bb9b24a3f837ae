// Package config loads the interner CLI configuration from file, environment
// and defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/interner/pkg/hashing"
	"github.com/Sumatoshi-tech/interner/pkg/persist"
)

// Sentinel validation errors.
var (
	ErrInvalidSymbol      = errors.New("invalid symbol width")
	ErrInvalidHasher      = errors.New("invalid hasher")
	ErrInvalidCapacity    = errors.New("capacity must not be negative")
	ErrInvalidCodec       = errors.New("invalid snapshot codec")
	ErrInvalidBenchSize   = errors.New("bench strings and string_len must be positive")
	ErrInvalidProfileSize = errors.New("profile words, steps and word_len must be positive")
	ErrInvalidOverhead    = errors.New("profile max_overhead must be zero or at least 1")
	ErrInvalidMemory      = errors.New("invalid profile max_memory")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidSampleRatio = errors.New("observability sample_ratio must be between 0 and 1")
)

// symbolWidths lists the accepted interner.symbol values.
var symbolWidths = []string{persist.WidthU16, persist.WidthU32, persist.WidthUint}

// Config is the top-level configuration struct.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Interner      InternerConfig      `mapstructure:"interner"`
	Snapshot      SnapshotConfig      `mapstructure:"snapshot"`
	Bench         BenchConfig         `mapstructure:"bench"`
	Profile       ProfileConfig       `mapstructure:"profile"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// InternerConfig selects how interners are built.
type InternerConfig struct {
	Symbol   string `mapstructure:"symbol"`
	Hasher   string `mapstructure:"hasher"`
	Capacity int    `mapstructure:"capacity"`
}

// SnapshotConfig selects the snapshot file format.
type SnapshotConfig struct {
	Codec    string `mapstructure:"codec"`
	Compress bool   `mapstructure:"compress"`
}

// BenchConfig sizes the benchmark word set.
type BenchConfig struct {
	Strings   int `mapstructure:"strings"`
	StringLen int `mapstructure:"string_len"`
}

// ProfileConfig sizes the allocation profile and its thresholds.
type ProfileConfig struct {
	Words       int     `mapstructure:"words"`
	Steps       int     `mapstructure:"steps"`
	WordLen     int     `mapstructure:"word_len"`
	MaxOverhead float64 `mapstructure:"max_overhead"`
	MaxMemory   string  `mapstructure:"max_memory"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// ObservabilityConfig holds telemetry export settings.
type ObservabilityConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	MetricsAddr  string  `mapstructure:"metrics_addr"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

// Validate checks every section.
func (c *Config) Validate() error {
	return errors.Join(
		c.Interner.validate(),
		c.Snapshot.validate(),
		c.Bench.validate(),
		c.Profile.validate(),
		c.Logging.validate(),
		c.Observability.validate(),
	)
}

// NewHasher returns the configured hash strategy.
func (c InternerConfig) NewHasher() (hashing.Hasher, error) {
	h, err := hashing.ByName(c.Hasher)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHasher, err)
	}

	return h, nil
}

// NewCodec returns the configured snapshot codec.
func (c SnapshotConfig) NewCodec() (persist.Codec, error) {
	codec, err := persist.CodecByName(c.Codec, c.Compress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCodec, err)
	}

	return codec, nil
}

// MaxMemoryBytes returns the parsed memory threshold, zero when unset.
func (c ProfileConfig) MaxMemoryBytes() (uint64, error) {
	if c.MaxMemory == "" {
		return 0, nil
	}

	n, err := humanize.ParseBytes(c.MaxMemory)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidMemory, c.MaxMemory, err)
	}

	return n, nil
}

// SlogLevel returns the configured level.
func (c LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.Level))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Level)
	}

	return level, nil
}

// --- Internal methods ---.

func (c InternerConfig) validate() error {
	if !slices.Contains(symbolWidths, c.Symbol) {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, c.Symbol)
	}

	if c.Capacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, c.Capacity)
	}

	_, err := c.NewHasher()

	return err
}

func (c SnapshotConfig) validate() error {
	_, err := c.NewCodec()

	return err
}

func (c BenchConfig) validate() error {
	if c.Strings <= 0 || c.StringLen <= 0 {
		return fmt.Errorf("%w: %d, %d", ErrInvalidBenchSize, c.Strings, c.StringLen)
	}

	return nil
}

func (c ProfileConfig) validate() error {
	if c.Words <= 0 || c.Steps <= 0 || c.WordLen <= 0 {
		return fmt.Errorf("%w: %d, %d, %d", ErrInvalidProfileSize, c.Words, c.Steps, c.WordLen)
	}

	if c.MaxOverhead != 0 && c.MaxOverhead < 1 {
		return fmt.Errorf("%w: %g", ErrInvalidOverhead, c.MaxOverhead)
	}

	_, err := c.MaxMemoryBytes()

	return err
}

func (c LoggingConfig) validate() error {
	_, err := c.SlogLevel()

	return err
}

func (c ObservabilityConfig) validate() error {
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, c.SampleRatio)
	}

	return nil
}
