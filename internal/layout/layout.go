/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout derives pixel geometry from a settings snapshot and splits
// the image list into per-page chunks. Everything here is pure arithmetic;
// the composition tool is invoked elsewhere.
package layout

import "photogrid/internal/domain"

// MinCellPx is the floor for cell dimensions. Tight margins and wide borders
// can drive the raw arithmetic to zero or below; cells never shrink past this.
const MinCellPx = 64

// contactSheetColumns is the fixed column heuristic used to size cells when
// the composition tool picks the tiling itself.
const contactSheetColumns = 6

// Plan carries the derived pixel geometry for one generation request,
// alongside the settings it was derived from. Build it once per request via
// Compute; it stays valid for the lifetime of that request only.
type Plan struct {
	Settings domain.Settings

	CanvasW int // px
	CanvasH int // px
	CellW   int // px
	CellH   int // px

	// Tile is the composition tool tile spec ("CxR"), empty for contact
	// sheets where the tool decides the tiling.
	Tile string
}

// Compute derives the canvas and cell geometry from a settings snapshot.
// All inputs are pre-validated enum/range selections, so Compute cannot fail.
// It is pure: identical settings yield identical plans.
func Compute(s domain.Settings) Plan {
	s = s.Normalized()

	pw, ph := s.PaperWidth, s.PaperHeight
	if s.Orientation == domain.Landscape {
		pw, ph = ph, pw
	}

	p := Plan{
		Settings: s,
		CanvasW:  int(pw * float64(s.DPI)),
		CanvasH:  int(ph * float64(s.DPI)),
	}

	if !s.Grid.Auto() {
		cols, rows := s.Grid.Columns, s.Grid.Rows
		p.CellW = (p.CanvasW - 2*s.Margin - cols*2*(s.Border+s.Spacing)) / cols
		p.CellH = (p.CanvasH - 2*s.Margin - rows*2*(s.Border+s.Spacing)) / rows
		p.CellW = max(p.CellW, MinCellPx)
		p.CellH = max(p.CellH, MinCellPx)
		p.Tile = s.Grid.String()
		return p
	}

	// Contact sheet: square cells from a fixed column count, montage decides
	// the actual tiling.
	p.CellW = (p.CanvasW - 2*s.Margin) / contactSheetColumns
	p.CellH = p.CellW
	return p
}

// Chunk partitions images into per-page groups of the grid's capacity,
// preserving order; the final group may be shorter. Contact sheets place all
// images on a single page. An empty input yields no chunks.
func Chunk(images []string, p Plan) [][]string {
	if len(images) == 0 {
		return nil
	}
	per := p.Settings.Grid.Capacity()
	if p.Tile == "" || per <= 0 {
		return [][]string{images}
	}
	var chunks [][]string
	for i := 0; i < len(images); i += per {
		end := min(i+per, len(images))
		chunks = append(chunks, images[i:end])
	}
	return chunks
}

// PageCount returns the number of output pages for n images under plan p.
func PageCount(n int, p Plan) int {
	if n == 0 {
		return 0
	}
	per := p.Settings.Grid.Capacity()
	if p.Tile == "" || per <= 0 {
		return 1
	}
	return (n + per - 1) / per
}
