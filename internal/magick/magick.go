/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package magick wraps the external ImageMagick binary. The application never
// touches pixel data itself; every composition step is delegated to `magick`
// subprocesses, chained through an in-memory byte stream where needed.
package magick

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"photogrid/internal/domain"
	"photogrid/internal/layout"
	applog "photogrid/internal/log"
)

// DefaultBinary is the ImageMagick v7 entry point expected on PATH.
const DefaultBinary = "magick"

// ErrNotFound reports that the ImageMagick binary is not discoverable. It is
// a precondition failure, distinct from a render failure: callers check it
// before spawning any subprocess.
var ErrNotFound = errors.New("ImageMagick not found on PATH")

// excerptLimit bounds the stderr excerpt attached to render errors.
const excerptLimit = 120

// RenderError wraps a non-zero exit of a composition subprocess with a short
// diagnostic excerpt from the tool's stderr.
type RenderError struct {
	Stage   string // "compose", "canvas" or "merge"
	Excerpt string
	Err     error
}

func (e *RenderError) Error() string {
	if e.Excerpt != "" {
		return fmt.Sprintf("%s stage failed: %s", e.Stage, e.Excerpt)
	}
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// excerpt trims and truncates tool diagnostics for user display.
func excerpt(stderr []byte) string {
	s := strings.TrimSpace(string(stderr))
	if len(s) > excerptLimit {
		s = s[:excerptLimit]
	}
	return s
}

// Runner invokes the ImageMagick binary. The zero value is not usable; build
// one with New.
type Runner struct {
	binary string
	log    *slog.Logger
}

// New returns a Runner for the given binary name or path. An empty binary
// selects DefaultBinary.
func New(binary string) *Runner {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &Runner{binary: binary, log: applog.WithComponent("magick")}
}

// Binary returns the configured binary name or path.
func (r *Runner) Binary() string { return r.binary }

// Check verifies the binary is discoverable on the command search path.
func (r *Runner) Check() error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return fmt.Errorf("%w (looked for %q)", ErrNotFound, r.binary)
	}
	return nil
}

// ComposeArgs builds the stage-1 montage invocation: lay the chunk's images
// out as a grid and emit the composed tile as PNG on stdout.
func ComposeArgs(images []string, p layout.Plan) []string {
	s := p.Settings
	args := append([]string{"montage"}, images...)
	if s.Fill == domain.FillCrop {
		args = append(args,
			"-resize", fmt.Sprintf("%dx%d^", p.CellW, p.CellH),
			"-gravity", "center",
			"-extent", fmt.Sprintf("%dx%d", p.CellW, p.CellH),
			"-geometry", fmt.Sprintf("+%d+%d", s.Spacing, s.Spacing),
		)
	} else {
		args = append(args,
			"-geometry", fmt.Sprintf("%dx%d+%d+%d", p.CellW, p.CellH, s.Spacing, s.Spacing),
		)
	}
	if p.Tile != "" {
		args = append(args, "-tile", p.Tile)
	}
	args = append(args,
		"-border", strconv.Itoa(s.Border),
		"-bordercolor", s.BorderColor,
		"-background", s.Background,
		"png:-",
	)
	return args
}

// CanvasArgs builds the stage-2 invocation: read the composed tile on stdin,
// center it on the full canvas, tag DPI metadata and write dest.
func CanvasArgs(p layout.Plan, dest string) []string {
	return []string{
		"-",
		"-gravity", "center",
		"-background", p.Settings.Background,
		"-extent", fmt.Sprintf("%dx%d", p.CanvasW, p.CanvasH),
		"-units", "PixelsPerInch",
		"-density", strconv.Itoa(p.Settings.DPI),
		dest,
	}
}

// MergeArgs builds the document-merge invocation bundling page files, in
// order, into a single multi-page document at dest.
func MergeArgs(pages []string, dpi int, dest string) []string {
	args := append([]string(nil), pages...)
	return append(args,
		"-units", "PixelsPerInch",
		"-density", strconv.Itoa(dpi),
		dest,
	)
}

// ComposePage runs the two-stage pipeline for one page: montage the chunk
// into a tile, then center the tile on the canvas and write dest. The tile
// travels between the stages as an in-memory byte stream; both exit statuses
// are checked and the first failure wins.
func (r *Runner) ComposePage(ctx context.Context, images []string, p layout.Plan, dest string) error {
	l := applog.WithOperation(r.log, "compose_page")
	l.Debug("render page",
		slog.Int("images", len(images)),
		slog.String("tile", p.Tile),
		slog.String("dest", dest),
	)

	tile, err := r.run(ctx, "compose", nil, ComposeArgs(images, p))
	if err != nil {
		return err
	}
	if _, err := r.run(ctx, "canvas", tile, CanvasArgs(p, dest)); err != nil {
		return err
	}
	return nil
}

// MergePages bundles rendered page files into one document at dest.
func (r *Runner) MergePages(ctx context.Context, pages []string, dpi int, dest string) error {
	l := applog.WithOperation(r.log, "merge_pages")
	l.Debug("merge document", slog.Int("pages", len(pages)), slog.String("dest", dest))
	_, err := r.run(ctx, "merge", nil, MergeArgs(pages, dpi, dest))
	return err
}

// run executes one magick invocation, feeding stdin if non-nil and returning
// captured stdout. Failures come back as *RenderError.
func (r *Runner) run(ctx context.Context, stage string, stdin []byte, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		re := &RenderError{Stage: stage, Excerpt: excerpt(stderr.Bytes()), Err: err}
		r.log.Error("magick invocation failed",
			slog.String("stage", stage),
			slog.String("excerpt", re.Excerpt),
		)
		return nil, re
	}
	return stdout.Bytes(), nil
}
