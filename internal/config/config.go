// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads arc-bookshelf settings from defaults, an optional
// config.yaml in the data directory, a .env file and ARC_BOOKSHELF_* variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "ARC_BOOKSHELF"

// Config holds the resolved settings.
type Config struct {
	Storage  string `mapstructure:"storage"`
	DataDir  string `mapstructure:"data_dir"`
	Locale   string `mapstructure:"locale"`
	LogLevel string `mapstructure:"log_level"`
	S3       S3     `mapstructure:"s3"`
}

// S3 configures s3:// export and import targets. Credentials come from the
// default AWS chain.
type S3 struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	PathStyle bool   `mapstructure:"path_style"`
}

// Language parses Locale, falling back to English.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// DefaultDataDir is ~/.arc-bookshelf, or a relative .arc-bookshelf when the
// home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arc-bookshelf"
	}
	return filepath.Join(home, ".arc-bookshelf")
}

// Load resolves the configuration. A missing .env or config.yaml is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("storage", "sqlite")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("locale", "en")
	v.SetDefault("log_level", "info")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.path_style", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString("data_dir"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	return &cfg, nil
}
