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
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tsframe/internal/hdftext"
	"github.com/GoogleCloudPlatform/tsframe/internal/timeconv"
)

var (
	parseOutFile  string
	parseDatetime bool
)

var parseCmd = &cobra.Command{
	Use:     "parse FILE",
	Short:   "Parse a BEGIN DATA file and write it as CSV",
	Long:    `Reads a measurement file in the BEGIN DATA text layout and writes its table as CSV to stdout or a file.`,
	Example: `./tsframe parse obs_2020.txt --datetime -o obs_2020.csv`,
	Args:    cobra.ExactArgs(1),
	RunE:    runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	t, err := hdftext.ParseFile(args[0])
	if err != nil {
		return err
	}
	logger.Info("parsed file", zap.String("path", args[0]), zap.Int("rows", t.NumRows()), zap.Strings("columns", t.Names()))

	if parseDatetime {
		if t, err = timeconv.AddDatetimeColumn(t); err != nil {
			return err
		}
	}
	return writeTable(cmd, parseOutFile, t)
}

func init() {
	parseCmd.Flags().StringVarP(&parseOutFile, "out_file", "o", "", "File path to save the CSV to (optional, defaults to stdout)")
	parseCmd.Flags().BoolVar(&parseDatetime, "datetime", false, "Prepend a datetime column built from the year, day and hr columns")
}
