/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ui is the desktop shell around the render pipeline. The Fyne
// implementation is gated behind the "fyne" build tag so headless builds
// and CI stay free of display dependencies.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"photogrid/internal/render"
)

// dpiLabels returns the DPI menu entries for a select widget.
func dpiLabels(choices []int) []string {
	out := make([]string, len(choices))
	for i, d := range choices {
		out[i] = strconv.Itoa(d)
	}
	return out
}

// clampField parses a numeric form field, falling back and clamping to
// the allowed range. Form entries never abort a render over a typo.
func clampField(text string, min, max, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return fallback
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// summaryText renders the status line shown after a successful generation.
func summaryText(sum render.OutputSummary) string {
	switch sum.Mode {
	case render.ModeDocument:
		if len(sum.Paths) > 0 {
			return fmt.Sprintf("Saved %d pages to %s", sum.Pages, sum.Paths[0])
		}
		return fmt.Sprintf("Saved %d pages", sum.Pages)
	case render.ModePages:
		return fmt.Sprintf("Saved %d pages as numbered files", sum.Pages)
	default:
		if len(sum.Paths) > 0 {
			return "Saved " + sum.Paths[0]
		}
		return "Saved"
	}
}
