// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads poolctl's configuration from a file, environment
// variables, and CLI flags, in that order of increasing precedence, via
// spf13/viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is poolctl's fully resolved runtime configuration.
type Config struct {
	ListenAddr   string
	MaxCount     int
	MaxMemUsage  uint64
	MaxPerSender int
	RateLimit    float64
	RateBurst    int
	LogLevel     string
}

// Default returns the configuration used when no file, environment
// variable, or flag overrides a setting.
func Default() Config {
	return Config{
		ListenAddr:   "127.0.0.1:8645",
		MaxCount:     50_000,
		MaxMemUsage:  512 << 20,
		MaxPerSender: 64,
		RateLimit:    50,
		RateBurst:    200,
		LogLevel:     "info",
	}
}

// Load resolves a Config from configPath (if non-empty), the POOLCTL_*
// environment namespace, and flags, with flags taking precedence.
func Load(configPath string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("max_count", def.MaxCount)
	v.SetDefault("max_mem_usage", def.MaxMemUsage)
	v.SetDefault("max_per_sender", def.MaxPerSender)
	v.SetDefault("rate_limit", def.RateLimit)
	v.SetDefault("rate_burst", def.RateBurst)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix("poolctl")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", configPath, err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	return Config{
		ListenAddr:   v.GetString("listen_addr"),
		MaxCount:     v.GetInt("max_count"),
		MaxMemUsage:  cast.ToUint64(v.Get("max_mem_usage")),
		MaxPerSender: v.GetInt("max_per_sender"),
		RateLimit:    v.GetFloat64("rate_limit"),
		RateBurst:    v.GetInt("rate_burst"),
		LogLevel:     v.GetString("log_level"),
	}, nil
}

// RateLimitBurstWindow is the period RateLimit is counted over: poolctl
// converts RateLimit with rate.Limit, which counts events per second, so
// RateLimit is in "transactions per sender per second". poolctl itself
// does not read this constant.
const RateLimitBurstWindow = time.Second
