/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"photogrid/internal/config"
	"photogrid/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	var prune int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generation runs",
		Long: `History prints the most recent generation runs recorded in the local
database, newest first. Recording can be turned off in the config file
or with PG_HISTORY_OFF.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			store, err := history.Open(cfgDir)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if prune > 0 {
				removed, perr := store.Prune(cmd.Context(), prune)
				if perr != nil {
					return perr
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d runs, kept the newest %d.\n", removed, prune)
				return nil
			}

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s  %2d pages  %3d images  %s grid @ %d dpi  %s  -> %s\n",
					e.CreatedAt.Local().Format(time.DateTime), e.Mode, e.Pages, e.Images, e.Grid, e.DPI, e.Paper, e.Destination)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show")
	cmd.Flags().IntVar(&prune, "prune", 0, "delete all but the newest N runs instead of listing")
	return cmd
}
