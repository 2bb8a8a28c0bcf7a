//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"photogrid/internal/config"
	"photogrid/internal/crash"
	"photogrid/internal/domain"
	"photogrid/internal/history"
	applog "photogrid/internal/log"
	"photogrid/internal/magick"
	"photogrid/internal/preset"
	"photogrid/internal/render"
	"photogrid/internal/session"
	"photogrid/internal/thumb"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Run starts the Fyne-based desktop UI. Initial image paths are added to
// the session before the window appears.
func Run(paths []string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cfgDir, _ := config.ConfigDir()
	defer func() { crash.Recover(cfgDir) }()

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	var hist *history.Store
	if !cfg.General.HistoryDisabled && cfgDir != "" {
		if h, herr := history.Open(cfgDir); herr != nil {
			l.Warn("history unavailable", slog.Any("err", herr))
		} else {
			hist = h
			defer func() { _ = hist.Close() }()
		}
	}

	tool := magick.New(cfg.Tools.Magick)
	pipeline := render.New(tool)
	sess := session.New()
	sess.Add(paths...)

	fyneApp := app.NewWithID("photogrid")
	w := fyneApp.NewWindow("PhotoGrid")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1000)
	winH := prefs.IntWithFallback("window.height", 700)
	if winW < 700 {
		winW = 700
	}
	if winH < 500 {
		winH = 500
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	busy := false

	papers := preset.Merged(cfgDir)
	paperNames := make([]string, len(papers))
	for i, p := range papers {
		paperNames[i] = p.Name
	}

	// Image list (left)
	listPaths := sess.Paths()
	var imageList *widget.List
	var refreshImages func()
	imageList = widget.NewList(
		func() int { return len(listPaths) },
		func() fyne.CanvasObject {
			img := canvas.NewImageFromImage(nil)
			img.FillMode = canvas.ImageFillContain
			img.SetMinSize(fyne.NewSize(thumb.DefaultEdge, thumb.DefaultEdge))
			return container.NewBorder(nil, nil, img, widget.NewButton("Remove", nil), widget.NewLabel(""))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i < 0 || int(i) >= len(listPaths) {
				return
			}
			path := listPaths[i]
			row := o.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(filepath.Base(path))
			img := row.Objects[1].(*canvas.Image)
			if tn, terr := thumb.FromFile(path, thumb.DefaultEdge); terr == nil {
				img.Image = tn
				img.Refresh()
			}
			row.Objects[2].(*widget.Button).OnTapped = func() {
				sess.Remove(path)
				refreshImages()
			}
		},
	)
	refreshImages = func() {
		listPaths = sess.Paths()
		imageList.Refresh()
		status.SetText(fmt.Sprintf("%d images", sess.Len()))
	}

	addBtn := widget.NewButton("Add Images…", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			path := rc.URI().Path()
			_ = rc.Close()
			if n := sess.Add(path); n > 0 {
				l.Info("image added", slog.String("path", path))
			}
			refreshImages()
		}, w)
		fd.SetFilter(fstorage.NewExtensionFileFilter(imageExtensions))
		fd.Show()
	})
	sortBtn := widget.NewButton("Sort by Capture Time", func() {
		sess.SortByCaptureTime()
		refreshImages()
	})
	clearBtn := widget.NewButton("Clear", func() {
		sess.Clear()
		refreshImages()
	})
	left := container.NewBorder(
		container.NewVBox(widget.NewLabel("Images"), container.NewHBox(addBtn, sortBtn, clearBtn), widget.NewSeparator()),
		nil, nil, nil, imageList)

	// Settings form (right), pre-filled from config defaults
	def := cfg.Defaults.Settings()
	paperSelect := widget.NewSelect(paperNames, nil)
	if cfg.Defaults.Paper != "" {
		paperSelect.SetSelected(cfg.Defaults.Paper)
	} else {
		paperSelect.SetSelected("A4")
	}
	orientSelect := widget.NewSelect([]string{"portrait", "landscape"}, nil)
	orientSelect.SetSelected(def.Orientation.String())
	dpiSelect := widget.NewSelect(dpiLabels(domain.DPIChoices), nil)
	dpiSelect.SetSelected(strconv.Itoa(def.DPI))
	layoutSelect := widget.NewSelect(domain.LayoutNames(), nil)
	layoutSelect.SetSelected(cfg.Defaults.Layout)
	fillSelect := widget.NewSelect([]string{"fit", "crop"}, nil)
	fillSelect.SetSelected(def.Fill.String())

	borderEntry := widget.NewEntry()
	borderEntry.SetText(strconv.Itoa(def.Border))
	spacingEntry := widget.NewEntry()
	spacingEntry.SetText(strconv.Itoa(def.Spacing))
	marginEntry := widget.NewEntry()
	marginEntry.SetText(strconv.Itoa(def.Margin))
	bgEntry := widget.NewEntry()
	bgEntry.SetText(def.Background)
	borderColorEntry := widget.NewEntry()
	borderColorEntry.SetText(def.BorderColor)
	pdfCheck := widget.NewCheck("Combine pages into one PDF", nil)

	form := widget.NewForm(
		widget.NewFormItem("Paper", paperSelect),
		widget.NewFormItem("Orientation", orientSelect),
		widget.NewFormItem("DPI", dpiSelect),
		widget.NewFormItem("Layout", layoutSelect),
		widget.NewFormItem("Fill", fillSelect),
		widget.NewFormItem("Border (px)", borderEntry),
		widget.NewFormItem("Spacing (px)", spacingEntry),
		widget.NewFormItem("Margin (px)", marginEntry),
		widget.NewFormItem("Background", bgEntry),
		widget.NewFormItem("Border color", borderColorEntry),
		widget.NewFormItem("", pdfCheck),
	)

	currentSettings := func() domain.Settings {
		s := def
		for _, p := range papers {
			if p.Name == paperSelect.Selected {
				s.PaperWidth = p.Width
				s.PaperHeight = p.Height
			}
		}
		if o, oerr := domain.ParseOrientation(orientSelect.Selected); oerr == nil {
			s.Orientation = o
		}
		if dpi, derr := strconv.Atoi(dpiSelect.Selected); derr == nil && domain.ValidDPI(dpi) {
			s.DPI = dpi
		}
		for _, lp := range domain.Layouts {
			if lp.Name == layoutSelect.Selected {
				s.Grid = lp.Grid
			}
		}
		if f, ferr := domain.ParseFillMode(fillSelect.Selected); ferr == nil {
			s.Fill = f
		}
		s.Border = clampField(borderEntry.Text, 0, 50, def.Border)
		s.Spacing = clampField(spacingEntry.Text, 0, 50, def.Spacing)
		s.Margin = clampField(marginEntry.Text, 0, 100, def.Margin)
		s.Background = bgEntry.Text
		s.BorderColor = borderColorEntry.Text
		s.PDF = pdfCheck.Checked
		return s.Normalized()
	}

	recordRun := func(sum render.OutputSummary, s domain.Settings, images int) {
		if hist == nil {
			return
		}
		dest := ""
		if len(sum.Paths) > 0 {
			dest = sum.Paths[0]
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if _, herr := hist.Record(ctx, history.Entry{
			Mode:        sum.Mode.String(),
			Pages:       sum.Pages,
			Images:      images,
			Destination: dest,
			Paper:       fmt.Sprintf("%gx%gin %s", s.PaperWidth, s.PaperHeight, s.Orientation),
			Grid:        s.Grid.String(),
			DPI:         s.DPI,
		}); herr != nil {
			l.Warn("history record failed", slog.Any("err", herr))
		}
	}

	// Preview window with page navigation
	showPreview := func(pages []string) {
		if len(pages) == 0 {
			return
		}
		pw := fyneApp.NewWindow("Preview")
		idx := 0
		img := canvas.NewImageFromFile(pages[idx])
		img.FillMode = canvas.ImageFillContain
		counter := widget.NewLabel(fmt.Sprintf("Page 1 of %d", len(pages)))
		show := func() {
			img.File = pages[idx]
			img.Refresh()
			counter.SetText(fmt.Sprintf("Page %d of %d", idx+1, len(pages)))
		}
		prev := widget.NewButton("Previous", func() {
			if idx > 0 {
				idx--
				show()
			}
		})
		next := widget.NewButton("Next", func() {
			if idx < len(pages)-1 {
				idx++
				show()
			}
		})
		nav := container.NewHBox(prev, counter, next)
		pw.SetContent(container.NewBorder(nil, nav, nil, nil, img))
		pw.Resize(fyne.NewSize(600, 750))
		pw.Show()
	}

	previewBtn := widget.NewButton("Preview", func() {
		if busy {
			return
		}
		busy = true
		status.SetText("Rendering preview…")
		images := sess.Paths()
		s := currentSettings()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			pages, perr := pipeline.Preview(ctx, images, s)
			fyne.Do(func() {
				busy = false
				if perr != nil {
					status.SetText("Preview failed.")
					dialog.ShowError(perr, w)
					return
				}
				status.SetText(fmt.Sprintf("Preview: %d pages", len(pages)))
				showPreview(pages)
			})
		}()
	})

	generateBtn := widget.NewButton("Generate…", func() {
		if busy {
			return
		}
		s := currentSettings()
		fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			dest := wc.URI().Path()
			_ = wc.Close()
			busy = true
			status.SetText("Generating…")
			images := sess.Paths()
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
				defer cancel()
				sum, gerr := pipeline.Generate(ctx, images, s, dest)
				fyne.Do(func() {
					busy = false
					if gerr != nil {
						status.SetText("Generation failed.")
						dialog.ShowError(gerr, w)
						return
					}
					recordRun(sum, s, len(images))
					status.SetText(summaryText(sum))
				})
			}()
		}, w)
		if s.PDF {
			fd.SetFileName("photos.pdf")
		} else {
			fd.SetFileName("photos.jpg")
		}
		fd.Show()
	})

	pipeline.Progress = func(st render.State, page, total int) {
		fyne.Do(func() {
			switch st {
			case render.StateRendering:
				status.SetText(fmt.Sprintf("Rendering page %d of %d…", page, total))
			case render.StateAssembling:
				status.SetText("Assembling document…")
			}
		})
	}

	right := container.NewBorder(nil, container.NewHBox(previewBtn, generateBtn), nil, nil, form)
	split := container.NewHSplit(left, right)
	split.Offset = 0.55
	w.SetContent(container.NewBorder(nil, status, nil, nil, split))

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	refreshImages()
	w.ShowAndRun()
	return nil
}
