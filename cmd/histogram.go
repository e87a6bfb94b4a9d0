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

	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
	"github.com/GoogleCloudPlatform/tsframe/internal/histogram"
	"github.com/GoogleCloudPlatform/tsframe/internal/pipeline"
	"github.com/GoogleCloudPlatform/tsframe/internal/utils"
)

var (
	histogramOutFile string
	histogramASCII   bool
	histogramColumn  string
	histogramTitle   string
)

var histogramCmd = &cobra.Command{
	Use:   "histogram FILE...",
	Short: "Plot the histogram of flag counts per row",
	Long: `Parses and merges the inputs, counts flag values per row and renders the
histogram of the counts as a PNG image and/or a terminal chart. Another numeric
column can be plotted with --column.`,
	Example: `./tsframe histogram --flag -999 --bins 10 obs_2020.txt -o flags.png`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runHistogram,
}

func runHistogram(cmd *cobra.Command, args []string) error {
	paths, tables, err := loadInputs(args)
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

	h, err := histogram.FromColumn(res.Table, histogramColumn, appConfig.Pipeline.Bins)
	if err != nil {
		return err
	}

	if histogramASCII {
		fmt.Fprintln(cmd.OutOrStdout(), histogram.ASCII(h, 10))
		if histogramOutFile == "" {
			return nil
		}
	}

	outputFile := histogramOutFile
	if outputFile == "" {
		outputFile = utils.GetDefaultOutputFilePath(paths[0], "histogram")
	}
	style := histogram.DefaultStyle()
	if histogramTitle != "" {
		style.Title = histogramTitle
	}
	if histogramColumn != frame.FlagCountColumn {
		style.XLabel = histogramColumn
	}
	if err := histogram.SavePNG(outputFile, h, histogram.DefaultWidth, histogram.DefaultHeight, style); err != nil {
		return err
	}
	logger.Info("wrote histogram", zap.String("path", outputFile), zap.Int("values", h.Total))
	fmt.Fprintf(cmd.OutOrStdout(), "Histogram written to: %s\n", outputFile)
	return nil
}

func init() {
	addMergeFlags(histogramCmd)
	addFlagValueFlag(histogramCmd)
	histogramCmd.Flags().Int("bins", histogram.DefaultBins, "Number of histogram bins")
	histogramCmd.Flags().StringVarP(&histogramOutFile, "out_file", "o", "", "File path to save the PNG to (optional, defaults to <first input>_histogram.png)")
	histogramCmd.Flags().BoolVar(&histogramASCII, "ascii", false, "Print the histogram as a terminal chart; no PNG is written unless --out_file is given")
	histogramCmd.Flags().StringVar(&histogramColumn, "column", frame.FlagCountColumn, "Numeric column to plot")
	histogramCmd.Flags().StringVar(&histogramTitle, "title", "", "Plot title (optional)")
}
