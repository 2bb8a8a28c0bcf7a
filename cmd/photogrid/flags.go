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
	"strings"

	"github.com/spf13/cobra"

	"photogrid/internal/config"
	"photogrid/internal/domain"
	"photogrid/internal/preset"
)

// settingsFlags holds the layout options shared by render and preview.
// Unset flags inherit the configured defaults.
type settingsFlags struct {
	paper       string
	orientation string
	layout      string
	grid        string
	fill        string
	background  string
	borderColor string
	dpi         int
	border      int
	spacing     int
	margin      int
	pdf         bool
}

func (f *settingsFlags) register(cmd *cobra.Command, d config.DefaultsConfig) {
	fl := cmd.Flags()
	fl.StringVar(&f.paper, "paper", d.Paper, "paper size name (see 'photogrid papers')")
	fl.StringVar(&f.orientation, "orientation", d.Orientation, "portrait or landscape")
	fl.StringVar(&f.layout, "layout", d.Layout, "layout preset name")
	fl.StringVar(&f.grid, "grid", "", "explicit grid as CxR or 'auto', overrides --layout")
	fl.StringVar(&f.fill, "fill", d.Fill, "cell fill mode: fit or crop")
	fl.StringVar(&f.background, "background", d.Background, "page background color")
	fl.StringVar(&f.borderColor, "border-color", d.BorderColor, "cell border color")
	fl.IntVar(&f.dpi, "dpi", d.DPI, "render resolution (150, 300 or 600)")
	fl.IntVar(&f.border, "border", d.Border, "cell border width in px")
	fl.IntVar(&f.spacing, "spacing", d.Spacing, "spacing between cells in px")
	fl.IntVar(&f.margin, "margin", d.Margin, "page margin in px")
}

// settings resolves the flags into a render request. User paper presets
// from cfgDir take part in the name lookup.
func (f *settingsFlags) settings(cfgDir string) (domain.Settings, error) {
	s := domain.DefaultSettings()

	found := false
	for _, p := range preset.Merged(cfgDir) {
		if strings.EqualFold(p.Name, strings.TrimSpace(f.paper)) {
			s.PaperWidth = p.Width
			s.PaperHeight = p.Height
			found = true
			break
		}
	}
	if !found {
		return s, fmt.Errorf("unknown paper %q, run 'photogrid papers' for the list", f.paper)
	}

	o, err := domain.ParseOrientation(f.orientation)
	if err != nil {
		return s, err
	}
	s.Orientation = o

	if !domain.ValidDPI(f.dpi) {
		return s, fmt.Errorf("unsupported dpi %d, choose one of %v", f.dpi, domain.DPIChoices)
	}
	s.DPI = f.dpi

	if strings.TrimSpace(f.grid) != "" {
		g, gerr := domain.ParseGridShape(f.grid)
		if gerr != nil {
			return s, gerr
		}
		s.Grid = g
	} else {
		matched := false
		for _, lp := range domain.Layouts {
			if strings.EqualFold(lp.Name, strings.TrimSpace(f.layout)) {
				s.Grid = lp.Grid
				matched = true
				break
			}
		}
		if !matched {
			return s, fmt.Errorf("unknown layout %q, choose one of %v", f.layout, domain.LayoutNames())
		}
	}

	fm, err := domain.ParseFillMode(f.fill)
	if err != nil {
		return s, err
	}
	s.Fill = fm

	if f.border < 0 || f.border > 50 {
		return s, fmt.Errorf("border must be between 0 and 50 px")
	}
	if f.spacing < 0 || f.spacing > 50 {
		return s, fmt.Errorf("spacing must be between 0 and 50 px")
	}
	if f.margin < 0 || f.margin > 100 {
		return s, fmt.Errorf("margin must be between 0 and 100 px")
	}
	s.Border = f.border
	s.Spacing = f.spacing
	s.Margin = f.margin
	s.Background = f.background
	s.BorderColor = f.borderColor
	s.PDF = f.pdf

	return s.Normalized(), nil
}
