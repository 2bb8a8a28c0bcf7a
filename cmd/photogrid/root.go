/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	applog "photogrid/internal/log"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photogrid",
		Short: "Arrange photos into printable grid pages with ImageMagick",
		Long: `PhotoGrid lays out batches of photos on printable pages: grids of
equal cells on a chosen paper size, contact sheets, and multi-page PDF
documents. Rendering is delegated to the ImageMagick "magick" binary,
which must be installed separately.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env if present, then initialize logging from env
			_ = godotenv.Load()
			applog.Init(applog.FromEnv())
		},
	}

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newPreviewCmd())
	cmd.AddCommand(newPapersCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newUICmd())

	return cmd
}
