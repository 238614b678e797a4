// SPDX-License-Identifier: MIT

// Package config loads CLI settings from cfpq.yaml and CFPQ_* environment
// variables. Values absent from both keep the defaults of Default.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/cfpq/cfpq"
)

// EnvPrefix prefixes every environment override, e.g. CFPQ_LOG_LEVEL.
const EnvPrefix = "CFPQ"

// ErrInvalidConfig is returned by Validate and Load for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// DefaultChunkSizes are the chunk sizes benchmarked when none are configured.
var DefaultChunkSizes = []int{1, 2, 4, 8, 16, 32, 50, 100, 500, 1000, 5000, 10000, 100000}

// Config holds every tunable of the cfpq command.
type Config struct {
	// Algo is the solver name, one of cfpq.Names().
	Algo string `mapstructure:"algo"`

	// ChunkSizes drives the bench command.
	ChunkSizes []int `mapstructure:"chunk_sizes"`

	// ChunkCount is the number of chunks verify splits a graph into.
	ChunkCount int `mapstructure:"chunk_count"`

	// Workers bounds Opt's intra-round goroutines; 0 means one per CPU.
	Workers int `mapstructure:"workers"`

	// ParallelChunks bounds how many chunks verify solves at once.
	ParallelChunks int `mapstructure:"parallel_chunks"`

	// CSV is the file bench appends rows to.
	CSV string `mapstructure:"csv"`

	// Metrics, when set, receives the Prometheus text dump after bench.
	Metrics string `mapstructure:"metrics"`

	// Manifest is the corpus manifest path.
	Manifest string `mapstructure:"manifest"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Algo:           cfpq.AlgoOpt,
		ChunkSizes:     append([]int(nil), DefaultChunkSizes...),
		ChunkCount:     20,
		Workers:        0,
		ParallelChunks: 1,
		CSV:            "test_algo_results.csv",
		Manifest:       "corpus.yaml",
		Log:            LogConfig{Level: "info"},
	}
}

// New returns a viper instance carrying the defaults and env bindings.
// Callers may bind CLI flags to it before calling Decode.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("algo", d.Algo)
	v.SetDefault("chunk_sizes", d.ChunkSizes)
	v.SetDefault("chunk_count", d.ChunkCount)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("parallel_chunks", d.ParallelChunks)
	v.SetDefault("csv", d.CSV)
	v.SetDefault("metrics", d.Metrics)
	v.SetDefault("manifest", d.Manifest)
	v.SetDefault("log.level", d.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path (or ./cfpq.yaml when path is empty) into v and decodes it.
// A missing default file is not an error; a missing explicit path is.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cfpq")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config.Load: %w", err)
		}
	}

	return Decode(v)
}

// Decode unmarshals v and validates the result.
func Decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config.Decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks value ranges and the solver name.
func (c Config) Validate() error {
	known := false
	for _, n := range cfpq.Names() {
		if n == c.Algo {
			known = true
			break
		}
	}
	switch {
	case !known:
		return fmt.Errorf("algo %q not in %v: %w", c.Algo, cfpq.Names(), ErrInvalidConfig)
	case c.ChunkCount < 1:
		return fmt.Errorf("chunk_count=%d must be >= 1: %w", c.ChunkCount, ErrInvalidConfig)
	case c.Workers < 0:
		return fmt.Errorf("workers=%d must be >= 0: %w", c.Workers, ErrInvalidConfig)
	case c.ParallelChunks < 1:
		return fmt.Errorf("parallel_chunks=%d must be >= 1: %w", c.ParallelChunks, ErrInvalidConfig)
	}
	for _, s := range c.ChunkSizes {
		if s < 1 {
			return fmt.Errorf("chunk_sizes contains %d: %w", s, ErrInvalidConfig)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses Log.Level into a zap level.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log.level: %v: %w", err, ErrInvalidConfig)
	}

	return lvl, nil
}
