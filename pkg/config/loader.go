package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".interner"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for interner settings.
const envPrefix = "INTERNER"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	viperCfg := viper.New()
	applyDefaults(viperCfg)

	var cfg Config

	// Defaults always decode.
	_ = viperCfg.Unmarshal(&cfg)

	return &cfg
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("interner.symbol", DefaultSymbol)
	viperCfg.SetDefault("interner.hasher", DefaultHasher)
	viperCfg.SetDefault("interner.capacity", DefaultCapacity)

	viperCfg.SetDefault("snapshot.codec", DefaultSnapshotCodec)
	viperCfg.SetDefault("snapshot.compress", DefaultSnapshotCompress)

	viperCfg.SetDefault("bench.strings", DefaultBenchStrings)
	viperCfg.SetDefault("bench.string_len", DefaultBenchStringLen)

	viperCfg.SetDefault("profile.words", DefaultProfileWords)
	viperCfg.SetDefault("profile.steps", DefaultProfileSteps)
	viperCfg.SetDefault("profile.word_len", DefaultProfileWordLen)
	viperCfg.SetDefault("profile.max_overhead", DefaultProfileMaxOverhead)
	viperCfg.SetDefault("profile.max_memory", DefaultProfileMaxMemory)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.json", DefaultLogJSON)

	viperCfg.SetDefault("observability.otlp_endpoint", DefaultOTLPEndpoint)
	viperCfg.SetDefault("observability.otlp_insecure", DefaultOTLPInsecure)
	viperCfg.SetDefault("observability.metrics_addr", DefaultMetricsAddr)
	viperCfg.SetDefault("observability.sample_ratio", DefaultSampleRatio)
}
