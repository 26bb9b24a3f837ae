package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/interner/pkg/config"
	"github.com/Sumatoshi-tech/interner/pkg/hashing"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.DefaultSymbol, cfg.Interner.Symbol)
	assert.Equal(t, config.DefaultBenchStrings, cfg.Bench.Strings)
	assert.Equal(t, config.DefaultProfileWordLen, cfg.Profile.WordLen)
	assert.InDelta(t, config.DefaultSampleRatio, cfg.Observability.SampleRatio, 0)
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{"symbol", func(c *config.Config) { c.Interner.Symbol = "u8" }, config.ErrInvalidSymbol},
		{"hasher", func(c *config.Config) { c.Interner.Hasher = "md5" }, config.ErrInvalidHasher},
		{"capacity", func(c *config.Config) { c.Interner.Capacity = -1 }, config.ErrInvalidCapacity},
		{"codec", func(c *config.Config) { c.Snapshot.Codec = "xml" }, config.ErrInvalidCodec},
		{"bench", func(c *config.Config) { c.Bench.StringLen = 0 }, config.ErrInvalidBenchSize},
		{"profile", func(c *config.Config) { c.Profile.Steps = 0 }, config.ErrInvalidProfileSize},
		{"overhead", func(c *config.Config) { c.Profile.MaxOverhead = 0.5 }, config.ErrInvalidOverhead},
		{"memory", func(c *config.Config) { c.Profile.MaxMemory = "lots" }, config.ErrInvalidMemory},
		{"log level", func(c *config.Config) { c.Logging.Level = "loud" }, config.ErrInvalidLogLevel},
		{"sample ratio", func(c *config.Config) { c.Observability.SampleRatio = 1.5 }, config.ErrInvalidSampleRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tt.mutate(cfg)

			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Interner.Symbol = "u8"
	cfg.Bench.Strings = 0

	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalidSymbol)
	require.ErrorIs(t, err, config.ErrInvalidBenchSize)
}

func TestNewHasher(t *testing.T) {
	t.Parallel()

	cfg := config.InternerConfig{Hasher: hashing.NameXXHash}

	h, err := cfg.NewHasher()
	require.NoError(t, err)
	assert.Equal(t, hashing.NameXXHash, h.Name())
}

func TestNewCodec(t *testing.T) {
	t.Parallel()

	codec, err := config.SnapshotConfig{Codec: "gob", Compress: true}.NewCodec()
	require.NoError(t, err)
	assert.Equal(t, ".gob.lz4", codec.Extension())
}

func TestMaxMemoryBytes(t *testing.T) {
	t.Parallel()

	n, err := config.ProfileConfig{MaxMemory: "64MB"}.MaxMemoryBytes()
	require.NoError(t, err)
	assert.Equal(t, uint64(64_000_000), n)

	n, err = config.ProfileConfig{MaxMemory: "1 MiB"}.MaxMemoryBytes()
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<20), n)

	n, err = config.ProfileConfig{}.MaxMemoryBytes()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	level, err := config.LoggingConfig{Level: "debug"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = config.LoggingConfig{Level: "WARN"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}
