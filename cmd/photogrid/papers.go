/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"photogrid/internal/config"
	"photogrid/internal/preset"
)

func newPapersCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "papers",
		Short: "List available paper sizes",
		Long: `Papers lists the built-in paper sizes plus any user presets from
papers.json in the config directory. The names are accepted by the
--paper flag of render and preview.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, _ := config.ConfigDir()
			papers := preset.Merged(cfgDir)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(papers)
			}
			for _, p := range papers {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %5.2f x %5.2f in\n", p.Name, p.Width, p.Height)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
