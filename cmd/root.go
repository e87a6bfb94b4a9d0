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
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tsframe/internal/config"
	"github.com/GoogleCloudPlatform/tsframe/internal/database"
	_ "github.com/GoogleCloudPlatform/tsframe/internal/database/mysql"
	_ "github.com/GoogleCloudPlatform/tsframe/internal/database/postgres"
	_ "github.com/GoogleCloudPlatform/tsframe/internal/database/sqlserver"
	"github.com/GoogleCloudPlatform/tsframe/internal/export"
	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
	"github.com/GoogleCloudPlatform/tsframe/internal/logging"
)

var (
	cfgFile string

	// Set by initFlagsAndConfig before any subcommand runs.
	appConfig *config.Config
	logger    = zap.NewNop()
)

// flagKeys maps command line flags to the configuration keys they override.
// A flag only overrides the file and environment when it is set explicitly.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",

	"dialect":                           "database.dialect",
	"host":                              "database.host",
	"port":                              "database.port",
	"username":                          "database.user",
	"password":                          "database.password",
	"database":                          "database.dbname",
	"sslmode":                           "database.sslmode",
	"cloudsql-instance-connection-name": "database.cloudsql_instance_connection_name",
	"cloudsql-use-private-ip":           "database.use_private_ip",
	"null-value":                        "database.null_value",

	"key":              "pipeline.key",
	"flag":             "pipeline.flag_value",
	"bins":             "pipeline.bins",
	"add-datetime":     "pipeline.add_datetime",
	"on-collision":     "pipeline.on_collision",
	"output":           "pipeline.output",
	"histogram-output": "pipeline.histogram",
}

var rootCmd = &cobra.Command{
	Use:   "tsframe",
	Short: "A tool to post-process scientific time-series tables",
	Long: `tsframe is a CLI tool that reads measurement tables in the BEGIN DATA text
layout (or from a SQL database), merges them on a key column, builds calendar
timestamps, counts sentinel flag values per row and plots their histogram.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initFlagsAndConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// initFlagsAndConfig loads the configuration from defaults, the optional
// config file, TSFRAME_* environment variables and explicitly set flags, in
// increasing order of precedence, and installs the logger.
func initFlagsAndConfig(cmd *cobra.Command, args []string) error {
	v := config.New()
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	l, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l.With(zap.String("command", cmd.Name()))
	zap.ReplaceGlobals(l)
	if cfgFile != "" {
		logger.Debug("loaded config file", zap.String("path", cfgFile))
	}
	return nil
}

func validateDialect(dialect string) error {
	for _, supported := range database.Dialects() {
		if dialect == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported dialect: %s (only %s are supported)", dialect, strings.Join(database.Dialects(), ", "))
}

func setupDatabase(ctx context.Context) (*database.DB, error) {
	dbConfig := appConfig.Database
	if err := validateDialect(dbConfig.Dialect); err != nil {
		return nil, err
	}
	db, err := database.New(ctx, dbConfig, logger)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// writeTable writes t as CSV to path, or to the command output when path is
// empty or "-".
func writeTable(cmd *cobra.Command, path string, t *frame.Table) error {
	if path == "" || path == "-" {
		return export.WriteCSV(cmd.OutOrStdout(), t)
	}
	if err := export.SaveCSV(path, t); err != nil {
		return err
	}
	logger.Info("wrote table", zap.String("path", path), zap.Int("rows", t.NumRows()), zap.Int("columns", t.NumCols()))
	return nil
}

// addDatabaseFlags registers the connection flags on c.
func addDatabaseFlags(c *cobra.Command) {
	d := config.Default().Database
	c.Flags().String("dialect", d.Dialect, fmt.Sprintf("Database dialect (%s)", strings.Join(database.Dialects(), ", ")))
	c.Flags().String("host", d.Host, "Database host")
	c.Flags().Int("port", d.Port, "Database port")
	c.Flags().String("username", "", "Database username")
	c.Flags().String("password", "", "Database password")
	c.Flags().String("database", "", "Database name")
	c.Flags().String("sslmode", d.SSLMode, "PostgreSQL sslmode")
	c.Flags().String("cloudsql-instance-connection-name", "", "Cloud SQL instance connection name (for Cloud SQL dialects)")
	c.Flags().Bool("cloudsql-use-private-ip", false, "Use private IP for Cloud SQL connection (Cloud SQL)")
	c.Flags().Float64("null-value", d.NullValue, "Value stored for SQL NULL cells")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	d := config.Default()

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (YAML, TOML or JSON)")
	rootCmd.PersistentFlags().String("log-level", d.Log.Level, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", d.Log.Format, "Log format (console or json)")

	// Add subcommands
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(countFlagsCmd)
	rootCmd.AddCommand(histogramCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(fracdateCmd)
	rootCmd.AddCommand(loadSQLCmd)
	rootCmd.AddCommand(processCmd)
}
