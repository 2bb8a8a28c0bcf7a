/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photogrid/internal/domain"
	"photogrid/internal/layout"
)

// fakeTool stands in for the ImageMagick runner. It records every call and
// writes a tiny real PNG for each composed page so downstream consumers can
// read the files back.
type fakeTool struct {
	checkErr error
	failAt   int // 1-based compose call that fails; 0 = never

	composed  [][]string
	dests     []string
	plans     []layout.Plan
	merged    []string
	mergeDPI  int
	mergeDest string
	mergeErr  error
}

func (f *fakeTool) Check() error { return f.checkErr }

func (f *fakeTool) ComposePage(_ context.Context, images []string, p layout.Plan, dest string) error {
	f.composed = append(f.composed, images)
	f.plans = append(f.plans, p)
	if f.failAt > 0 && len(f.composed) == f.failAt {
		return errors.New("compose stage failed: simulated")
	}
	f.dests = append(f.dests, dest)
	return writeTinyPNG(dest)
}

func (f *fakeTool) MergePages(_ context.Context, pages []string, dpi int, dest string) error {
	if f.mergeErr != nil {
		return f.mergeErr
	}
	f.merged = append([]string(nil), pages...)
	f.mergeDPI = dpi
	f.mergeDest = dest
	return os.WriteFile(dest, []byte("%PDF-fake"), 0o644)
}

func writeTinyPNG(dest string) error {
	fh, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer fh.Close()
	return png.Encode(fh, image.NewRGBA(image.Rect(0, 0, 1, 1)))
}

func imageList(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("/photos/img-%03d.jpg", i)
	}
	return out
}

func settings4x6() domain.Settings {
	s := domain.DefaultSettings()
	s.PaperWidth, s.PaperHeight = 4, 6
	s.Grid = domain.GridShape{Columns: 2, Rows: 2}
	return s
}

func TestGenerateRejectsEmptyImageList(t *testing.T) {
	ft := &fakeTool{}
	_, err := New(ft).Generate(context.Background(), nil, settings4x6(), "/tmp/out.jpg")
	var pe *PreconditionError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PreconditionError, got %v", err)
	}
	if !errors.Is(err, ErrNoImages) {
		t.Fatalf("expected ErrNoImages, got %v", err)
	}
	if len(ft.composed) != 0 {
		t.Fatalf("no subprocess should run on precondition failure")
	}
}

func TestGenerateRejectsMissingTool(t *testing.T) {
	ft := &fakeTool{checkErr: errors.New("ImageMagick not found on PATH")}
	_, err := New(ft).Generate(context.Background(), imageList(1), settings4x6(), "/tmp/out.jpg")
	var pe *PreconditionError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PreconditionError, got %v", err)
	}
	if len(ft.composed) != 0 {
		t.Fatalf("tool absence must abort before any compose call")
	}
}

// Scenario: 4 images on a 2x2 grid fit one page, written straight to dest.
func TestGenerateSinglePage(t *testing.T) {
	ft := &fakeTool{}
	dest := filepath.Join(t.TempDir(), "grid.jpg")
	sum, err := New(ft).Generate(context.Background(), imageList(4), settings4x6(), dest)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if sum.Mode != ModeSingle || sum.Pages != 1 {
		t.Fatalf("summary: %+v", sum)
	}
	if len(sum.Paths) != 1 || sum.Paths[0] != dest {
		t.Fatalf("paths: %v", sum.Paths)
	}
	if len(ft.composed) != 1 || len(ft.composed[0]) != 4 {
		t.Fatalf("compose calls: %v", ft.composed)
	}
	if ft.plans[0].CanvasW != 1200 || ft.plans[0].CanvasH != 1800 {
		t.Fatalf("canvas: %dx%d", ft.plans[0].CanvasW, ft.plans[0].CanvasH)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

// Scenario: 9 images on a 2x2 grid produce three numbered files.
func TestGenerateNumberedPages(t *testing.T) {
	ft := &fakeTool{}
	dir := t.TempDir()
	dest := filepath.Join(dir, "grid.jpg")
	sum, err := New(ft).Generate(context.Background(), imageList(9), settings4x6(), dest)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if sum.Mode != ModePages || sum.Pages != 3 {
		t.Fatalf("summary: %+v", sum)
	}
	want := []string{
		filepath.Join(dir, "grid-1.jpg"),
		filepath.Join(dir, "grid-2.jpg"),
		filepath.Join(dir, "grid-3.jpg"),
	}
	for i, w := range want {
		if sum.Paths[i] != w {
			t.Errorf("path %d: got %q want %q", i, sum.Paths[i], w)
		}
		if _, err := os.Stat(w); err != nil {
			t.Errorf("page file missing: %v", err)
		}
	}
	sizes := []int{4, 4, 1}
	for i, n := range sizes {
		if len(ft.composed[i]) != n {
			t.Errorf("chunk %d size %d, want %d", i, len(ft.composed[i]), n)
		}
	}
}

// Scenario: document mode merges temp page files into one PDF at the
// normalized destination with the configured DPI.
func TestGenerateDocument(t *testing.T) {
	ft := &fakeTool{}
	dest := filepath.Join(t.TempDir(), "grid") // no extension on purpose
	s := settings4x6()
	s.PDF = true
	sum, err := New(ft).Generate(context.Background(), imageList(6), s, dest)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if sum.Mode != ModeDocument || sum.Pages != 2 {
		t.Fatalf("summary: %+v", sum)
	}
	if ft.mergeDest != dest+".pdf" {
		t.Fatalf("merge dest %q, want %q", ft.mergeDest, dest+".pdf")
	}
	if ft.mergeDPI != 300 {
		t.Fatalf("merge dpi %d, want 300", ft.mergeDPI)
	}
	if len(ft.merged) != 2 {
		t.Fatalf("merged %d pages, want 2", len(ft.merged))
	}
	for i, p := range ft.merged {
		if want := fmt.Sprintf("page-%d.png", i+1); filepath.Base(p) != want {
			t.Errorf("merged page %d named %q, want %q", i, filepath.Base(p), want)
		}
	}
	if _, err := os.Stat(dest + ".pdf"); err != nil {
		t.Fatalf("document missing: %v", err)
	}
}

func TestGenerateDocumentFallsBackToInProcessPDF(t *testing.T) {
	ft := &fakeTool{mergeErr: errors.New("compose stage failed: no PDF delegate")}
	dest := filepath.Join(t.TempDir(), "grid.pdf")
	s := settings4x6()
	s.PDF = true
	sum, err := New(ft).Generate(context.Background(), imageList(6), s, dest)
	if err != nil {
		t.Fatalf("Generate with fallback: %v", err)
	}
	if sum.Mode != ModeDocument || sum.Pages != 2 {
		t.Fatalf("summary: %+v", sum)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read fallback pdf: %v", err)
	}
	if !strings.HasPrefix(string(b), "%PDF") {
		t.Fatalf("fallback output is not a PDF (starts %q)", b[:min(8, len(b))])
	}
}

func TestGenerateAbortsOnFirstFailure(t *testing.T) {
	ft := &fakeTool{failAt: 2}
	var states []State
	pl := New(ft)
	pl.Progress = func(s State, page, total int) { states = append(states, s) }
	dest := filepath.Join(t.TempDir(), "grid.jpg")
	_, err := pl.Generate(context.Background(), imageList(9), settings4x6(), dest)
	if err == nil {
		t.Fatalf("expected failure")
	}
	if len(ft.composed) != 2 {
		t.Fatalf("rendering must stop at the failing page, got %d calls", len(ft.composed))
	}
	if states[len(states)-1] != StateFailed {
		t.Fatalf("final state %v, want failed", states[len(states)-1])
	}
}

func TestPreviewUsesReducedDPIAndTempDir(t *testing.T) {
	ft := &fakeTool{}
	pages, err := New(ft).Preview(context.Background(), imageList(5), settings4x6())
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("pages: %v", pages)
	}
	defer os.RemoveAll(filepath.Dir(pages[0]))
	if !strings.Contains(pages[0], "photogrid_") {
		t.Fatalf("preview pages should live in a photogrid_ temp dir: %q", pages[0])
	}
	for _, p := range ft.plans {
		if p.Settings.DPI != PreviewDPI {
			t.Fatalf("preview must render at %d DPI, got %d", PreviewDPI, p.Settings.DPI)
		}
	}
	for _, pg := range pages {
		if _, err := os.Stat(pg); err != nil {
			t.Fatalf("preview page missing: %v", err)
		}
	}
}

func TestPageDest(t *testing.T) {
	cases := []struct {
		dest string
		page int
		want string
	}{
		{"/out/grid.jpg", 1, "/out/grid-1.jpg"},
		{"/out/grid.jpg", 3, "/out/grid-3.jpg"},
		{"/out/grid.png", 2, "/out/grid-2.png"},
		{"/out/grid", 2, "/out/grid-2.jpg"},
	}
	for _, c := range cases {
		if got := PageDest(c.dest, c.page); got != c.want {
			t.Errorf("PageDest(%q, %d) = %q, want %q", c.dest, c.page, got, c.want)
		}
	}
}

func TestEnsurePDFExt(t *testing.T) {
	if got := EnsurePDFExt("/out/grid"); got != "/out/grid.pdf" {
		t.Errorf("missing ext: %q", got)
	}
	if got := EnsurePDFExt("/out/grid.pdf"); got != "/out/grid.pdf" {
		t.Errorf("existing ext: %q", got)
	}
	if got := EnsurePDFExt("/out/grid.PDF"); got != "/out/grid.PDF" {
		t.Errorf("case-insensitive ext: %q", got)
	}
}

func TestStateAndModeStrings(t *testing.T) {
	if StateRendering.String() != "rendering" || StateDone.String() != "done" {
		t.Fatalf("state strings wrong")
	}
	if ModeDocument.String() != "document" || ModePages.String() != "pages" || ModeSingle.String() != "single" {
		t.Fatalf("mode strings wrong")
	}
}
