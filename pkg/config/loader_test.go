package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/interner/pkg/config"
)

const (
	testCapacity  = 4096
	testStrings   = 5000
	testStringLen = 8
	testWords     = 2000
	testOverhead  = 1.5
)

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	emptyPath := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(emptyPath, []byte(""), 0o600))

	cfg, err := config.LoadConfig(emptyPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, config.DefaultSymbol, cfg.Interner.Symbol)
	assert.Equal(t, config.DefaultHasher, cfg.Interner.Hasher)
	assert.Equal(t, config.DefaultCapacity, cfg.Interner.Capacity)
	assert.Equal(t, config.DefaultSnapshotCodec, cfg.Snapshot.Codec)
	assert.Equal(t, config.DefaultSnapshotCompress, cfg.Snapshot.Compress)
	assert.Equal(t, config.DefaultBenchStrings, cfg.Bench.Strings)
	assert.Equal(t, config.DefaultBenchStringLen, cfg.Bench.StringLen)
	assert.Equal(t, config.DefaultProfileWords, cfg.Profile.Words)
	assert.Equal(t, config.DefaultProfileSteps, cfg.Profile.Steps)
	assert.InDelta(t, config.DefaultProfileMaxOverhead, cfg.Profile.MaxOverhead, 0.001)
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
	assert.Empty(t, cfg.Observability.OTLPEndpoint)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), ".interner.yaml")
	content := `interner:
  symbol: u16
  hasher: xxhash
  capacity: 4096
snapshot:
  codec: yaml
  compress: true
bench:
  strings: 5000
  string_len: 8
profile:
  words: 2000
  max_overhead: 1.5
  max_memory: 32MB
logging:
  level: debug
  json: true
observability:
  otlp_endpoint: localhost:4317
  otlp_insecure: true
  metrics_addr: ":9090"
  sample_ratio: 0.25
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "u16", cfg.Interner.Symbol)
	assert.Equal(t, "xxhash", cfg.Interner.Hasher)
	assert.Equal(t, testCapacity, cfg.Interner.Capacity)
	assert.Equal(t, "yaml", cfg.Snapshot.Codec)
	assert.True(t, cfg.Snapshot.Compress)
	assert.Equal(t, testStrings, cfg.Bench.Strings)
	assert.Equal(t, testStringLen, cfg.Bench.StringLen)
	assert.Equal(t, testWords, cfg.Profile.Words)
	assert.Equal(t, config.DefaultProfileSteps, cfg.Profile.Steps)
	assert.InDelta(t, testOverhead, cfg.Profile.MaxOverhead, 0.001)
	assert.Equal(t, "32MB", cfg.Profile.MaxMemory)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "localhost:4317", cfg.Observability.OTLPEndpoint)
	assert.True(t, cfg.Observability.OTLPInsecure)
	assert.Equal(t, ":9090", cfg.Observability.MetricsAddr)
	assert.InDelta(t, 0.25, cfg.Observability.SampleRatio, 0.001)
}

func TestLoadConfig_InvalidValue_Fails(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("interner:\n  symbol: u8\n"), 0o600))

	_, err := config.LoadConfig(cfgPath)
	require.ErrorIs(t, err, config.ErrInvalidSymbol)
}

func TestLoadConfig_MalformedFile_Fails(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("interner: [unclosed"), 0o600))

	_, err := config.LoadConfig(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("INTERNER_INTERNER_HASHER", "fnv")
	t.Setenv("INTERNER_BENCH_STRINGS", "77")

	emptyPath := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(emptyPath, []byte(""), 0o600))

	cfg, err := config.LoadConfig(emptyPath)
	require.NoError(t, err)

	assert.Equal(t, "fnv", cfg.Interner.Hasher)
	assert.Equal(t, 77, cfg.Bench.Strings)
}
