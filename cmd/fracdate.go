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
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/tsframe/internal/timeconv"
)

var fracdateLayout string

var fracdateCmd = &cobra.Command{
	Use:   "fracdate N...",
	Short: "Convert fractional years to calendar timestamps",
	Long: `Prints the UTC timestamp of every fractional year given. The fractional part
is converted with a fixed 365-day year.`,
	Example: `./tsframe fracdate 2020 2020.5`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFracdate,
}

func runFracdate(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		n, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid fractional year %q: %w", arg, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, timeconv.FromFractionalYear(n).Format(fracdateLayout))
	}
	return nil
}

func init() {
	fracdateCmd.Flags().StringVar(&fracdateLayout, "layout", time.RFC3339Nano, "Go time layout used to print the timestamps")
}
