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
	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/tsframe/internal/pipeline"
)

var mergeOutFile string

var mergeCmd = &cobra.Command{
	Use:   "merge FILE...",
	Short: "Merge several BEGIN DATA files on a key column",
	Long: `Parses every input, joins them one-to-one on the key column and writes the
result as CSV with the key first and the other columns sorted by name.
Glob patterns are expanded.`,
	Example: `./tsframe merge --key datetime temp_2020.txt wind_2020.txt -o merged.csv`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	_, tables, err := loadInputs(args)
	if err != nil {
		return err
	}
	opts, err := pipelineOptions(false)
	if err != nil {
		return err
	}
	res, err := pipeline.Run(logger, tables, opts)
	if err != nil {
		return err
	}
	return writeTable(cmd, mergeOutFile, res.Table)
}

func init() {
	addMergeFlags(mergeCmd)
	mergeCmd.Flags().StringVarP(&mergeOutFile, "out_file", "o", "", "File path to save the CSV to (optional, defaults to stdout)")
}
