/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load,
// e.g. TSFRAME_PIPELINE_KEY.
const EnvPrefix = "TSFRAME"

// Config holds all configuration for the application
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Dialect                        string  `mapstructure:"dialect"`
	Host                           string  `mapstructure:"host"`
	Port                           int     `mapstructure:"port"`
	User                           string  `mapstructure:"user"`
	Password                       string  `mapstructure:"password"`
	DBName                         string  `mapstructure:"dbname"`
	SSLMode                        string  `mapstructure:"sslmode"`
	CloudSQLInstanceConnectionName string  `mapstructure:"cloudsql_instance_connection_name"`
	UsePrivateIP                   bool    `mapstructure:"use_private_ip"`
	NullValue                      float64 `mapstructure:"null_value"` // stored for SQL NULL cells
}

// PipelineConfig describes the parse, merge, datetime, flag count and plot
// steps run by the process command.
type PipelineConfig struct {
	Inputs      []string `mapstructure:"inputs"`
	Key         string   `mapstructure:"key"`
	FlagValue   float64  `mapstructure:"flag_value"`
	Bins        int      `mapstructure:"bins"`
	AddDatetime bool     `mapstructure:"add_datetime"`
	OnCollision string   `mapstructure:"on_collision"`
	Output      string   `mapstructure:"output"`
	Histogram   string   `mapstructure:"histogram"`
}

// Default returns the configuration used when no file, environment variable
// or flag overrides a value.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Database: DatabaseConfig{
			Dialect:   "postgres",
			Host:      "localhost",
			Port:      5432,
			SSLMode:   "disable",
			NullValue: math.NaN(),
		},
		Pipeline: PipelineConfig{
			Key:         "datetime",
			FlagValue:   -999,
			Bins:        10,
			AddDatetime: true,
			OnCollision: "reject",
		},
	}
}

// setDefaults registers every field of Default with v so that environment
// variables are picked up for keys absent from the config file.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("database.dialect", d.Database.Dialect)
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.dbname", d.Database.DBName)
	v.SetDefault("database.sslmode", d.Database.SSLMode)
	v.SetDefault("database.cloudsql_instance_connection_name", d.Database.CloudSQLInstanceConnectionName)
	v.SetDefault("database.use_private_ip", d.Database.UsePrivateIP)
	v.SetDefault("database.null_value", d.Database.NullValue)

	v.SetDefault("pipeline.inputs", d.Pipeline.Inputs)
	v.SetDefault("pipeline.key", d.Pipeline.Key)
	v.SetDefault("pipeline.flag_value", d.Pipeline.FlagValue)
	v.SetDefault("pipeline.bins", d.Pipeline.Bins)
	v.SetDefault("pipeline.add_datetime", d.Pipeline.AddDatetime)
	v.SetDefault("pipeline.on_collision", d.Pipeline.OnCollision)
	v.SetDefault("pipeline.output", d.Pipeline.Output)
	v.SetDefault("pipeline.histogram", d.Pipeline.Histogram)
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path (if not empty) into v and decodes the
// result. The file format is taken from its extension.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be checked by their type alone.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	if c.Pipeline.Bins <= 0 {
		errs = append(errs, fmt.Errorf("pipeline.bins must be positive, got %d", c.Pipeline.Bins))
	}
	if c.Database.Port < 0 {
		errs = append(errs, fmt.Errorf("database.port must not be negative, got %d", c.Database.Port))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
