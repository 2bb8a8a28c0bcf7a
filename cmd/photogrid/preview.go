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
	"log/slog"

	"github.com/spf13/cobra"

	"photogrid/internal/config"
	applog "photogrid/internal/log"
	"photogrid/internal/magick"
	"photogrid/internal/render"
	"photogrid/internal/session"
)

func newPreviewCmd() *cobra.Command {
	var flags settingsFlags
	var sortCapture bool

	cmd := &cobra.Command{
		Use:   "preview [flags] <image>...",
		Short: "Render low-resolution preview pages to a temp directory",
		Long: `Preview renders the layout at screen resolution into a temporary
directory and prints the page paths, one per line. The files are left in
place for inspection.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := applog.WithComponent("cli")
			cfg, err := config.Load()
			if err != nil {
				l.Warn("config load failed, using defaults", slog.Any("err", err))
				cfg = config.Defaults()
			}
			cfgDir, _ := config.ConfigDir()

			s, err := flags.settings(cfgDir)
			if err != nil {
				return err
			}

			sess := session.New()
			sess.Add(args...)
			if sortCapture {
				sess.SortByCaptureTime()
			}

			pipeline := render.New(magick.New(cfg.Tools.Magick))
			pages, err := pipeline.Preview(cmd.Context(), sess.Paths(), s)
			if err != nil {
				return err
			}
			for _, p := range pages {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Defaults()
	}
	flags.register(cmd, cfg.Defaults)
	cmd.Flags().BoolVar(&sortCapture, "sort-capture", false, "order photos by EXIF capture time")

	return cmd
}
