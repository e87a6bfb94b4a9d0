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

	"github.com/GoogleCloudPlatform/tsframe/internal/histogram"
	"github.com/GoogleCloudPlatform/tsframe/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process [FILE...]",
	Short: "Run the full pipeline configured in the pipeline section",
	Long: `Parses the inputs (arguments, or pipeline.inputs from the config file),
merges them on the key, builds the datetime column, counts flags, sorts the
columns, writes the CSV and, when pipeline.histogram is set, the histogram PNG.`,
	Example: `./tsframe process --config tsframe.yaml
./tsframe process --key datetime --flag -999 --output merged.csv --histogram-output flags.png a.txt b.txt`,
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	pc := appConfig.Pipeline
	inputs := args
	if len(inputs) == 0 {
		inputs = pc.Inputs
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs: pass files as arguments or set pipeline.inputs")
	}

	_, tables, err := loadInputs(inputs)
	if err != nil {
		return err
	}
	opts, err := pipeline.OptionsFromConfig(pc)
	if err != nil {
		return err
	}
	res, err := pipeline.Run(logger, tables, opts)
	if err != nil {
		return err
	}

	if err := writeTable(cmd, pc.Output, res.Table); err != nil {
		return err
	}
	if res.Histogram != nil {
		if err := histogram.SavePNG(pc.Histogram, *res.Histogram, histogram.DefaultWidth, histogram.DefaultHeight, histogram.DefaultStyle()); err != nil {
			return err
		}
		logger.Info("wrote histogram", zap.String("path", pc.Histogram))
	}
	logger.Info("process operation completed", zap.Int("inputs", len(tables)))
	return nil
}

func init() {
	addMergeFlags(processCmd)
	addFlagValueFlag(processCmd)
	processCmd.Flags().Int("bins", histogram.DefaultBins, "Number of histogram bins")
	processCmd.Flags().String("output", "", "File path to save the CSV to (optional, defaults to stdout)")
	processCmd.Flags().String("histogram-output", "", "File path to save the flag histogram PNG to (optional)")
}
