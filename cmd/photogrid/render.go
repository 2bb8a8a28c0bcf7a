/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"photogrid/internal/config"
	"photogrid/internal/domain"
	"photogrid/internal/history"
	applog "photogrid/internal/log"
	"photogrid/internal/magick"
	"photogrid/internal/render"
	"photogrid/internal/session"
)

func newRenderCmd() *cobra.Command {
	var flags settingsFlags
	var output string
	var sortCapture bool

	cmd := &cobra.Command{
		Use:   "render [flags] <image>...",
		Short: "Render photos into grid pages and save them",
		Long: `Render lays the given photos out as grid pages and writes the result
to the output path. With more photos than grid cells, numbered sibling
files are written per page; with --pdf all pages are combined into a
single PDF document.`,
		Example: `  # 2x2 grid on A4, one output page
  photogrid render -o grid.jpg a.jpg b.jpg c.jpg d.jpg

  # contact sheet of a whole directory as PDF
  photogrid render --layout "Contact Sheet" --pdf -o sheet.pdf photos/*.jpg`,
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
			images := sess.Paths()

			pipeline := render.New(magick.New(cfg.Tools.Magick))
			pipeline.Progress = func(st render.State, page, total int) {
				if st == render.StateRendering {
					fmt.Fprintf(cmd.ErrOrStderr(), "rendering page %d of %d\n", page, total)
				}
			}

			sum, err := pipeline.Generate(cmd.Context(), images, s, output)
			if err != nil {
				return err
			}

			recordHistory(cfg, cfgDir, sum, s, len(images))

			switch sum.Mode {
			case render.ModeDocument:
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d pages to %s\n", sum.Pages, sum.Paths[0])
			case render.ModePages:
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d pages:\n", sum.Pages)
				for _, p := range sum.Paths {
					fmt.Fprintln(cmd.OutOrStdout(), " ", p)
				}
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", sum.Paths[0])
			}
			return nil
		},
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Defaults()
	}
	flags.register(cmd, cfg.Defaults)
	cmd.Flags().BoolVar(&flags.pdf, "pdf", false, "combine all pages into one PDF document")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (required)")
	cmd.Flags().BoolVar(&sortCapture, "sort-capture", false, "order photos by EXIF capture time")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// recordHistory stores a completed run unless history is disabled.
// Failures only log; a render that already succeeded stays successful.
func recordHistory(cfg config.AppConfig, cfgDir string, sum render.OutputSummary, s domain.Settings, images int) {
	if cfg.General.HistoryDisabled || cfgDir == "" {
		return
	}
	l := applog.WithComponent("cli")
	store, err := history.Open(cfgDir)
	if err != nil {
		l.Warn("history unavailable", slog.Any("err", err))
		return
	}
	defer func() { _ = store.Close() }()

	dest := ""
	if len(sum.Paths) > 0 {
		dest = sum.Paths[0]
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := store.Record(ctx, history.Entry{
		Mode:        sum.Mode.String(),
		Pages:       sum.Pages,
		Images:      images,
		Destination: dest,
		Paper:       fmt.Sprintf("%gx%gin %s", s.PaperWidth, s.PaperHeight, s.Orientation),
		Grid:        s.Grid.String(),
		DPI:         s.DPI,
	}); err != nil {
		l.Warn("history record failed", slog.Any("err", err))
	}
}
