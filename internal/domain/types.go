/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package domain defines the core data model for grid generation: paper and
// layout presets, the user-facing settings snapshot, and the enums shared by
// the planner, the renderer and the UI form.
package domain

import (
	"fmt"
	"strings"
)

// Paper describes a printable paper size in inches, portrait orientation.
type Paper struct {
	Name   string
	Width  float64
	Height float64
}

// Papers lists the supported paper sizes in menu order.
var Papers = []Paper{
	{Name: "4 x 6 in", Width: 4, Height: 6},
	{Name: "5 x 7 in", Width: 5, Height: 7},
	{Name: "A5", Width: 5.83, Height: 8.27},
	{Name: "A4", Width: 8.27, Height: 11.69},
	{Name: "A3", Width: 11.69, Height: 16.54},
	{Name: "Letter", Width: 8.5, Height: 11},
	{Name: "Legal", Width: 8.5, Height: 14},
	{Name: "Square 8 in", Width: 8, Height: 8},
	{Name: "Square 12 in", Width: 12, Height: 12},
}

// PaperByName looks up a built-in paper size by its menu label.
func PaperByName(name string) (Paper, bool) {
	for _, p := range Papers {
		if p.Name == name {
			return p, true
		}
	}
	return Paper{}, false
}

// PaperNames returns the menu labels in order.
func PaperNames() []string {
	out := make([]string, len(Papers))
	for i, p := range Papers {
		out[i] = p.Name
	}
	return out
}

// Orientation selects portrait or landscape paper orientation.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// ParseOrientation accepts "portrait" or "landscape" (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	}
	return Portrait, fmt.Errorf("unknown orientation %q", s)
}

// GridShape is a columns-by-rows grid. The zero shape (0x0) is the
// contact-sheet sentinel: tiling is delegated to the composition tool.
type GridShape struct {
	Columns int
	Rows    int
}

// Auto reports whether the shape is the contact-sheet sentinel.
func (g GridShape) Auto() bool { return g.Columns <= 0 || g.Rows <= 0 }

// Capacity returns the number of cells per page, or 0 for contact sheets.
func (g GridShape) Capacity() int {
	if g.Auto() {
		return 0
	}
	return g.Columns * g.Rows
}

func (g GridShape) String() string {
	if g.Auto() {
		return "auto"
	}
	return fmt.Sprintf("%dx%d", g.Columns, g.Rows)
}

// ParseGridShape accepts "CxR" (e.g. "2x2") or "auto".
func ParseGridShape(s string) (GridShape, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" || s == "contact" {
		return GridShape{}, nil
	}
	var c, r int
	if _, err := fmt.Sscanf(s, "%dx%d", &c, &r); err != nil {
		return GridShape{}, fmt.Errorf("invalid grid %q (want CxR or auto)", s)
	}
	if c < 1 || r < 1 {
		return GridShape{}, fmt.Errorf("invalid grid %q: columns and rows must be >= 1", s)
	}
	return GridShape{Columns: c, Rows: r}, nil
}

// LayoutPreset is a named grid shape offered by the UI.
type LayoutPreset struct {
	Name string
	Grid GridShape
}

// Layouts lists the grid presets in menu order. 0x0 means contact sheet.
var Layouts = []LayoutPreset{
	{Name: "Full Page (1)", Grid: GridShape{Columns: 1, Rows: 1}},
	{Name: "2 per page", Grid: GridShape{Columns: 1, Rows: 2}},
	{Name: "2 x 2 (4)", Grid: GridShape{Columns: 2, Rows: 2}},
	{Name: "3 x 3 (9)", Grid: GridShape{Columns: 3, Rows: 3}},
	{Name: "4 x 4 (16)", Grid: GridShape{Columns: 4, Rows: 4}},
	{Name: "5 x 5 (25)", Grid: GridShape{Columns: 5, Rows: 5}},
	{Name: "Contact Sheet", Grid: GridShape{}},
}

// LayoutNames returns the preset labels in order.
func LayoutNames() []string {
	out := make([]string, len(Layouts))
	for i, l := range Layouts {
		out[i] = l.Name
	}
	return out
}

// FillMode controls how source images are scaled into their cells.
type FillMode int

const (
	// FillFit resizes each image to fit inside the cell, preserving aspect.
	FillFit FillMode = iota
	// FillCrop resizes each image to cover the cell and crops the overflow.
	FillCrop
)

func (m FillMode) String() string {
	if m == FillCrop {
		return "crop"
	}
	return "fit"
}

// ParseFillMode accepts "fit" or "crop"/"fill" (case-insensitive).
func ParseFillMode(s string) (FillMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fit":
		return FillFit, nil
	case "crop", "fill":
		return FillCrop, nil
	}
	return FillFit, fmt.Errorf("unknown fill mode %q", s)
}

// DPIChoices lists the supported render resolutions.
var DPIChoices = []int{150, 300, 600}

// ValidDPI reports whether dpi is one of the supported resolutions.
func ValidDPI(dpi int) bool {
	for _, d := range DPIChoices {
		if d == dpi {
			return true
		}
	}
	return false
}

// Settings is the immutable value snapshot of one generation request. It is
// built once per preview/save action; the planner derives pixel geometry from
// it without mutating it.
type Settings struct {
	PaperWidth  float64 // inches, portrait
	PaperHeight float64 // inches, portrait
	Orientation Orientation
	DPI         int
	Grid        GridShape
	Border      int // px
	Spacing     int // px
	Margin      int // px
	Background  string
	BorderColor string
	Fill        FillMode
	PDF         bool // combine all pages into one PDF document
}

// DefaultSettings mirrors the initial state of the configuration form.
func DefaultSettings() Settings {
	a4, _ := PaperByName("A4")
	return Settings{
		PaperWidth:  a4.Width,
		PaperHeight: a4.Height,
		Orientation: Portrait,
		DPI:         300,
		Grid:        GridShape{Columns: 2, Rows: 2},
		Border:      2,
		Spacing:     4,
		Margin:      20,
		Background:  "white",
		BorderColor: "black",
		Fill:        FillFit,
	}
}

// Normalized returns a copy with empty color entries replaced by the
// fallbacks the form applies ("white" background, "gray" border).
func (s Settings) Normalized() Settings {
	if strings.TrimSpace(s.Background) == "" {
		s.Background = "white"
	} else {
		s.Background = strings.TrimSpace(s.Background)
	}
	if strings.TrimSpace(s.BorderColor) == "" {
		s.BorderColor = "gray"
	} else {
		s.BorderColor = strings.TrimSpace(s.BorderColor)
	}
	return s
}
