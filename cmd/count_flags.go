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

var countFlagsOutFile string

var countFlagsCmd = &cobra.Command{
	Use:   "count-flags FILE...",
	Short: "Count sentinel flag values per row",
	Long: `Parses and merges the inputs, then adds Flag_Count and Flag_Proportion
columns holding, for every row, how many cells equal the flag value.`,
	Example: `./tsframe count-flags --flag -999 obs_2020.txt`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runCountFlags,
}

func runCountFlags(cmd *cobra.Command, args []string) error {
	_, tables, err := loadInputs(args)
	if err != nil {
		return err
	}
	opts, err := pipelineOptions(true)
	if err != nil {
		return err
	}
	res, err := pipeline.Run(logger, tables, opts)
	if err != nil {
		return err
	}
	return writeTable(cmd, countFlagsOutFile, res.Table)
}

func init() {
	addMergeFlags(countFlagsCmd)
	addFlagValueFlag(countFlagsCmd)
	countFlagsCmd.Flags().StringVarP(&countFlagsOutFile, "out_file", "o", "", "File path to save the CSV to (optional, defaults to stdout)")
}
