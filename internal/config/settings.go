/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package config

import "photogrid/internal/domain"

// Settings resolves the configured form defaults into a domain settings
// snapshot. Unknown labels and out-of-range values silently fall back to the
// built-in defaults, so a stale or hand-edited config never blocks startup.
func (d DefaultsConfig) Settings() domain.Settings {
	s := domain.DefaultSettings()

	if p, ok := domain.PaperByName(d.Paper); ok {
		s.PaperWidth, s.PaperHeight = p.Width, p.Height
	}
	if o, err := domain.ParseOrientation(d.Orientation); err == nil {
		s.Orientation = o
	}
	if domain.ValidDPI(d.DPI) {
		s.DPI = d.DPI
	}
	for _, l := range domain.Layouts {
		if l.Name == d.Layout {
			s.Grid = l.Grid
			break
		}
	}
	if d.Border >= 0 && d.Border <= 50 {
		s.Border = d.Border
	}
	if d.Spacing >= 0 && d.Spacing <= 50 {
		s.Spacing = d.Spacing
	}
	if d.Margin >= 0 && d.Margin <= 100 {
		s.Margin = d.Margin
	}
	if d.Background != "" {
		s.Background = d.Background
	}
	if d.BorderColor != "" {
		s.BorderColor = d.BorderColor
	}
	if f, err := domain.ParseFillMode(d.Fill); err == nil {
		s.Fill = f
	}
	return s.Normalized()
}
