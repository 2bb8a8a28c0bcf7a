/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"photogrid/internal/layout"
	applog "photogrid/internal/log"
)

// mergeDocument bundles rendered page files into one PDF. The composition
// tool does the merge; when that fails (distro security policies frequently
// disable ImageMagick's PDF delegate) the document is assembled in-process
// from the page PNGs instead.
func (pl *Pipeline) mergeDocument(ctx context.Context, pages []string, p layout.Plan, dest string) error {
	err := pl.tool.MergePages(ctx, pages, p.Settings.DPI, dest)
	if err == nil {
		return nil
	}
	l := applog.WithOperation(pl.log, "merge_document")
	l.Warn("tool merge failed, assembling PDF in-process", slog.Any("err", err))
	if ferr := writePDFFromPages(pages, p, dest); ferr != nil {
		// surface the original tool failure; the fallback detail goes to the log
		l.Error("PDF fallback failed", slog.Any("err", ferr))
		return err
	}
	return nil
}

// writePDFFromPages builds a PDF whose page size matches the canvas at the
// configured DPI, embedding each rendered page image full-bleed.
func writePDFFromPages(pages []string, p layout.Plan, dest string) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages to merge")
	}
	// Page size in points: canvas px / dpi gives inches, 72 pt per inch.
	wPt := float64(p.CanvasW) / float64(p.Settings.DPI) * 72
	hPt := float64(p.CanvasH) / float64(p.Settings.DPI) * 72

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wPt, Ht: hPt},
		OrientationStr: "",
	})
	pdf.SetTitle("Photo Grid", false)

	for _, page := range pages {
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: wPt, Ht: hPt})
		opts := gofpdf.ImageOptions{ImageType: imageTypeFor(page), ReadDpi: false}
		pdf.RegisterImageOptions(page, opts)
		pdf.ImageOptions(page, 0, 0, wPt, hPt, false, opts, 0, "")
	}
	if pdf.Err() {
		return fmt.Errorf("assemble pdf: %v", pdf.Error())
	}
	if err := pdf.OutputFileAndClose(dest); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func imageTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".jpg", ".jpeg":
		return "JPG"
	default:
		return "PNG"
	}
}
