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
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tsframe/internal/database"
	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
	"github.com/GoogleCloudPlatform/tsframe/internal/pipeline"
	"github.com/GoogleCloudPlatform/tsframe/internal/utils"
)

var (
	loadSQLTables      string
	loadSQLTimeColumns []string
	loadSQLOutFile     string
	loadSQLCountFlags  bool
	loadSQLList        bool
)

var loadSQLCmd = &cobra.Command{
	Use:   "load-sql",
	Short: "Read numeric tables from a SQL database and merge them",
	Long: `Reads the selected tables from a PostgreSQL, MySQL or SQL Server database
(directly or through Cloud SQL), merges them on the key column and writes the
result as CSV. SQL NULL cells are replaced by --null-value.`,
	Example: `./tsframe load-sql --dialect postgres --host localhost --username user --password pass --database climate --tables "temperature[datetime,t2m],wind" --key datetime --time-columns datetime`,
	RunE: runLoadSQL,
}

func runLoadSQL(cmd *cobra.Command, args []string) error {
	dbConfig := appConfig.Database
	logger.Info("starting load-sql operation",
		zap.String("dialect", dbConfig.Dialect),
		zap.String("database", dbConfig.DBName))

	ctx := cmd.Context()
	db, err := setupDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if loadSQLList {
		return listSQLTables(cmd, db)
	}

	specs, err := utils.ParseTablesFlag(loadSQLTables)
	if err != nil {
		return fmt.Errorf("invalid --tables: %w", err)
	}
	if len(specs) == 0 {
		return fmt.Errorf("--tables is required unless --list is set")
	}

	loadOpts := database.LoadOptions{NullValue: dbConfig.NullValue, TimeColumns: loadSQLTimeColumns}
	tables := make([]*frame.Table, 0, len(specs))
	for _, spec := range specs {
		t, err := db.LoadTable(ctx, spec.Name, spec.Columns, loadOpts)
		if err != nil {
			return fmt.Errorf("failed to load table %s: %w", spec.Name, err)
		}
		tables = append(tables, t)
	}

	opts, err := pipelineOptions(loadSQLCountFlags)
	if err != nil {
		return err
	}
	opts.AddDatetime = false
	res, err := pipeline.Run(logger, tables, opts)
	if err != nil {
		return err
	}

	outputFile := loadSQLOutFile
	if outputFile == "" {
		outputFile = utils.GetDefaultOutputFilePath(dbConfig.DBName, "load-sql")
	}
	if err := writeTable(cmd, outputFile, res.Table); err != nil {
		return err
	}
	if outputFile != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "Table written to: %s\n", outputFile)
	}
	logger.Info("load-sql operation completed")
	return nil
}

func listSQLTables(cmd *cobra.Command, db *database.DB) error {
	ctx := cmd.Context()
	names, err := db.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, name := range names {
		cols, err := db.ListColumns(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to list columns of %s: %w", name, err)
		}
		fmt.Fprintln(out, name)
		for _, c := range cols {
			marker := ""
			if db.Handler.IsNumericType(c.DataType) {
				marker = " (numeric)"
			}
			fmt.Fprintf(out, "  %s %s%s\n", c.Name, c.DataType, marker)
		}
	}
	return nil
}

func init() {
	addDatabaseFlags(loadSQLCmd)
	addMergeFlags(loadSQLCmd)
	addFlagValueFlag(loadSQLCmd)
	loadSQLCmd.Flags().StringVar(&loadSQLTables, "tables", "", "Tables to read, e.g. 'temperature[datetime,t2m],wind'; all numeric columns are read when none are listed")
	loadSQLCmd.Flags().StringSliceVar(&loadSQLTimeColumns, "time-columns", nil, "Columns read as timestamps instead of numbers")
	loadSQLCmd.Flags().StringVarP(&loadSQLOutFile, "out_file", "o", "", "File path to save the CSV to (optional, defaults to <database>_load_sql.csv, '-' for stdout)")
	loadSQLCmd.Flags().BoolVar(&loadSQLCountFlags, "count-flags", false, "Add Flag_Count and Flag_Proportion columns")
	loadSQLCmd.Flags().BoolVar(&loadSQLList, "list", false, "List tables and columns instead of loading")
}
