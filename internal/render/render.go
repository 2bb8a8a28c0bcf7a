/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render orchestrates a generation request end to end: plan the
// geometry, chunk the image list, render each page through the composition
// tool and assemble the output files. Pages render strictly in order; the
// first failure aborts the rest.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"photogrid/internal/domain"
	"photogrid/internal/layout"
	applog "photogrid/internal/log"
)

// PreviewDPI is the reduced density used for on-screen previews.
const PreviewDPI = 72

// Tool is the slice of the composition runner the pipeline needs. It is an
// interface so tests can substitute a fake without an ImageMagick install.
type Tool interface {
	Check() error
	ComposePage(ctx context.Context, images []string, p layout.Plan, dest string) error
	MergePages(ctx context.Context, pages []string, dpi int, dest string) error
}

// PreconditionError reports a condition that prevents a render from starting
// at all: nothing selected, or the composition tool missing. No subprocess
// is spawned when one of these is raised.
type PreconditionError struct {
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string { return e.Reason }
func (e *PreconditionError) Unwrap() error { return e.Err }

// ErrNoImages is the precondition raised for an empty image list.
var ErrNoImages = errors.New("no images selected")

// State tracks a generation request through its lifecycle.
type State int

const (
	StateIdle State = iota
	StatePlanning
	StateRendering
	StateAssembling
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePlanning:
		return "planning"
	case StateRendering:
		return "rendering"
	case StateAssembling:
		return "assembling"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Mode describes how the output was written.
type Mode int

const (
	// ModeSingle wrote one page directly to the destination.
	ModeSingle Mode = iota
	// ModePages wrote numbered sibling files, one per page.
	ModePages
	// ModeDocument merged all pages into one multi-page document.
	ModeDocument
)

func (m Mode) String() string {
	switch m {
	case ModePages:
		return "pages"
	case ModeDocument:
		return "document"
	default:
		return "single"
	}
}

// OutputSummary reports what a completed generation produced.
type OutputSummary struct {
	Pages int
	Mode  Mode
	Paths []string
}

// Pipeline runs generation requests. It is synchronous and serial: one
// request at a time, one page at a time, blocking on each subprocess.
type Pipeline struct {
	tool Tool
	log  *slog.Logger

	// Progress, when set, observes state transitions. page/total are only
	// meaningful in StateRendering.
	Progress func(s State, page, total int)
}

// New builds a pipeline around a composition tool.
func New(tool Tool) *Pipeline {
	return &Pipeline{tool: tool, log: applog.WithComponent("render")}
}

func (pl *Pipeline) step(s State, page, total int) {
	if pl.Progress != nil {
		pl.Progress(s, page, total)
	}
}

// checkReady enforces the preconditions shared by preview and generate.
func (pl *Pipeline) checkReady(images []string) error {
	if len(images) == 0 {
		return &PreconditionError{Reason: "add some images first", Err: ErrNoImages}
	}
	if err := pl.tool.Check(); err != nil {
		return &PreconditionError{Reason: "ImageMagick not found - install it first", Err: err}
	}
	return nil
}

// Generate runs the full pipeline for settings s and writes the output at
// dest. Depending on the settings it produces a single image, numbered page
// images, or one combined PDF document.
func (pl *Pipeline) Generate(ctx context.Context, images []string, s domain.Settings, dest string) (OutputSummary, error) {
	if err := pl.checkReady(images); err != nil {
		return OutputSummary{}, err
	}

	pl.step(StatePlanning, 0, 0)
	p := layout.Compute(s)
	chunks := layout.Chunk(images, p)
	l := applog.WithOperation(pl.log, "generate").With(
		slog.Int("images", len(images)),
		slog.Int("pages", len(chunks)),
		slog.String("dest", dest),
	)

	var sum OutputSummary
	var err error
	switch {
	case s.PDF:
		sum, err = pl.generateDocument(ctx, chunks, p, dest)
	case len(chunks) == 1:
		if err = pl.renderPage(ctx, chunks[0], p, dest, 1, 1); err == nil {
			sum = OutputSummary{Pages: 1, Mode: ModeSingle, Paths: []string{dest}}
		}
	default:
		sum, err = pl.generatePages(ctx, chunks, p, dest)
	}
	if err != nil {
		pl.step(StateFailed, 0, 0)
		l.Error("generation failed", slog.Any("err", err))
		return OutputSummary{}, err
	}
	pl.step(StateDone, 0, 0)
	l.Info("generation complete", slog.String("mode", sum.Mode.String()))
	return sum, nil
}

// Preview renders all pages at PreviewDPI into a fresh private temp
// directory and returns the ordered page paths for display. The caller owns
// the directory; it is not reused across requests.
func (pl *Pipeline) Preview(ctx context.Context, images []string, s domain.Settings) ([]string, error) {
	if err := pl.checkReady(images); err != nil {
		return nil, err
	}

	pl.step(StatePlanning, 0, 0)
	s.DPI = PreviewDPI
	p := layout.Compute(s)
	chunks := layout.Chunk(images, p)

	dir, err := os.MkdirTemp("", "photogrid_")
	if err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}
	pages, err := pl.renderAll(ctx, chunks, p, dir)
	if err != nil {
		pl.step(StateFailed, 0, 0)
		return nil, err
	}
	pl.step(StateDone, 0, 0)
	return pages, nil
}

// generateDocument renders every chunk to a temp page file and merges them
// into a single document at dest (extension normalized to .pdf).
func (pl *Pipeline) generateDocument(ctx context.Context, chunks [][]string, p layout.Plan, dest string) (OutputSummary, error) {
	dir, err := os.MkdirTemp("", "photogrid_pdf_")
	if err != nil {
		return OutputSummary{}, fmt.Errorf("create page dir: %w", err)
	}
	// cleanup is best-effort; a leftover temp dir is not an error
	defer func() { _ = os.RemoveAll(dir) }()

	pages, err := pl.renderAll(ctx, chunks, p, dir)
	if err != nil {
		return OutputSummary{}, err
	}

	dest = EnsurePDFExt(dest)
	pl.step(StateAssembling, 0, 0)
	if err := pl.mergeDocument(ctx, pages, p, dest); err != nil {
		return OutputSummary{}, err
	}
	return OutputSummary{Pages: len(pages), Mode: ModeDocument, Paths: []string{dest}}, nil
}

// generatePages renders each chunk to a numbered sibling of dest.
func (pl *Pipeline) generatePages(ctx context.Context, chunks [][]string, p layout.Plan, dest string) (OutputSummary, error) {
	paths := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out := PageDest(dest, i+1)
		if err := pl.renderPage(ctx, chunk, p, out, i+1, len(chunks)); err != nil {
			return OutputSummary{}, err
		}
		paths = append(paths, out)
	}
	return OutputSummary{Pages: len(paths), Mode: ModePages, Paths: paths}, nil
}

// renderAll renders chunks to page-<n>.png files inside dir, in order.
func (pl *Pipeline) renderAll(ctx context.Context, chunks [][]string, p layout.Plan, dir string) ([]string, error) {
	paths := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out := filepath.Join(dir, fmt.Sprintf("page-%d.png", i+1))
		if err := pl.renderPage(ctx, chunk, p, out, i+1, len(chunks)); err != nil {
			return nil, err
		}
		paths = append(paths, out)
	}
	return paths, nil
}

// renderPage renders one chunk to dest via the two-stage pipeline.
func (pl *Pipeline) renderPage(ctx context.Context, chunk []string, p layout.Plan, dest string, page, total int) error {
	pl.step(StateRendering, page, total)
	return pl.tool.ComposePage(ctx, chunk, p, dest)
}

// PageDest derives the per-page output path by inserting a 1-based page
// index before the extension: grid.jpg -> grid-2.jpg. Extensionless
// destinations default to .jpg.
func PageDest(dest string, page int) string {
	ext := filepath.Ext(dest)
	if ext == "" {
		ext = ".jpg"
	}
	stem := strings.TrimSuffix(dest, filepath.Ext(dest))
	return fmt.Sprintf("%s-%d%s", stem, page, ext)
}

// EnsurePDFExt appends .pdf when the destination lacks it.
func EnsurePDFExt(dest string) string {
	if strings.EqualFold(filepath.Ext(dest), ".pdf") {
		return dest
	}
	return dest + ".pdf"
}
