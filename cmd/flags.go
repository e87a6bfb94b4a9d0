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

	"github.com/GoogleCloudPlatform/tsframe/internal/config"
	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
	"github.com/GoogleCloudPlatform/tsframe/internal/pipeline"
	"github.com/GoogleCloudPlatform/tsframe/internal/utils"
)

// addMergeFlags registers the flags shared by commands that merge inputs.
func addMergeFlags(c *cobra.Command) {
	p := config.Default().Pipeline
	c.Flags().String("key", p.Key, "Column the inputs are merged on")
	c.Flags().String("on-collision", p.OnCollision, "Handling of non-key columns present in several inputs ('reject' or 'suffix')")
	c.Flags().Bool("add-datetime", p.AddDatetime, "Build a datetime column from the year, day and hr columns")
}

// addFlagValueFlag registers the sentinel flag value.
func addFlagValueFlag(c *cobra.Command) {
	c.Flags().Float64("flag", config.Default().Pipeline.FlagValue, "Sentinel value counted by the flag counter")
}

// loadInputs expands globs in args and parses every file.
func loadInputs(args []string) ([]string, []*frame.Table, error) {
	paths, err := utils.ExpandInputs(args)
	if err != nil {
		return nil, nil, err
	}
	tables, err := pipeline.ParseFiles(logger, paths)
	if err != nil {
		return nil, nil, err
	}
	return paths, tables, nil
}

// pipelineOptions returns the merge options from the loaded configuration.
func pipelineOptions(countFlags bool) (pipeline.Options, error) {
	opts, err := pipeline.OptionsFromConfig(appConfig.Pipeline)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts.CountFlags = countFlags
	opts.Bins = 0
	return opts, nil
}
