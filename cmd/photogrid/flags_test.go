/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"testing"

	"photogrid/internal/domain"
)

func baseFlags() settingsFlags {
	return settingsFlags{
		paper:       "A4",
		orientation: "portrait",
		layout:      "2 x 2 (4)",
		fill:        "fit",
		background:  "white",
		borderColor: "black",
		dpi:         300,
		border:      2,
		spacing:     4,
		margin:      20,
	}
}

func TestSettingsFromFlags(t *testing.T) {
	f := baseFlags()
	f.orientation = "landscape"
	f.pdf = true

	s, err := f.settings(t.TempDir())
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if s.PaperWidth != 8.27 || s.PaperHeight != 11.69 {
		t.Fatalf("paper = %gx%g, want A4", s.PaperWidth, s.PaperHeight)
	}
	if s.Orientation != domain.Landscape {
		t.Fatalf("orientation = %v, want landscape", s.Orientation)
	}
	if s.Grid != (domain.GridShape{Columns: 2, Rows: 2}) {
		t.Fatalf("grid = %v, want 2x2", s.Grid)
	}
	if !s.PDF {
		t.Fatal("pdf flag not carried over")
	}
}

func TestSettingsGridOverridesLayout(t *testing.T) {
	f := baseFlags()
	f.grid = "3x2"
	s, err := f.settings(t.TempDir())
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if s.Grid != (domain.GridShape{Columns: 3, Rows: 2}) {
		t.Fatalf("grid = %v, want 3x2", s.Grid)
	}
}

func TestSettingsContactSheetAuto(t *testing.T) {
	f := baseFlags()
	f.layout = "Contact Sheet"
	s, err := f.settings(t.TempDir())
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if !s.Grid.Auto() {
		t.Fatalf("contact sheet grid should be auto, got %v", s.Grid)
	}
}

func TestSettingsEmptyColorsFallBack(t *testing.T) {
	f := baseFlags()
	f.background = "  "
	f.borderColor = ""
	s, err := f.settings(t.TempDir())
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if s.Background != "white" || s.BorderColor != "gray" {
		t.Fatalf("colors = %q/%q, want white/gray", s.Background, s.BorderColor)
	}
}

func TestSettingsRejectsBadValues(t *testing.T) {
	mods := []func(*settingsFlags){
		func(f *settingsFlags) { f.paper = "B17" },
		func(f *settingsFlags) { f.orientation = "diagonal" },
		func(f *settingsFlags) { f.dpi = 72 },
		func(f *settingsFlags) { f.layout = "no such preset" },
		func(f *settingsFlags) { f.grid = "0x4" },
		func(f *settingsFlags) { f.fill = "stretch" },
		func(f *settingsFlags) { f.border = 51 },
		func(f *settingsFlags) { f.spacing = -1 },
		func(f *settingsFlags) { f.margin = 101 },
	}
	for i, mod := range mods {
		f := baseFlags()
		mod(&f)
		if _, err := f.settings(t.TempDir()); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
