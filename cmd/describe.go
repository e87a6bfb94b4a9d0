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

	"github.com/GoogleCloudPlatform/tsframe/internal/export"
	"github.com/GoogleCloudPlatform/tsframe/internal/pipeline"
)

var describeCmd = &cobra.Command{
	Use:     "describe FILE...",
	Short:   "Print summary statistics of the merged inputs",
	Long:    `Parses and merges the inputs and prints mean, median, standard deviation, minimum, quartiles and maximum of every column.`,
	Example: `./tsframe describe --add-datetime=false --key hr obs_2020.txt`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
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
	summary, err := export.Describe(res.Table)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary.String())
	return nil
}

func init() {
	addMergeFlags(describeCmd)
}
