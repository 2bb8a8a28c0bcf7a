/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package session owns the ordered image list for one application run. The
// list is insertion-ordered and deduplicated by absolute path; it lives only
// for the session and is never persisted.
package session

import (
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	applog "photogrid/internal/log"
)

// Image is one selected source photograph. TakenAt is the EXIF capture time
// when readable, zero otherwise.
type Image struct {
	Path    string
	TakenAt time.Time
}

// probeCaptureTime is swappable in tests.
var probeCaptureTime = exifCaptureTime

// Session is the mutable image list behind the UI. Not safe for concurrent
// use; the UI serializes all access.
type Session struct {
	images []Image
	log    *slog.Logger
}

// New returns an empty session.
func New() *Session {
	return &Session{log: applog.WithComponent("session")}
}

// Add appends the given paths, normalized to absolute form, skipping any
// already present. It returns the number actually added. EXIF capture times
// are probed best-effort; unreadable metadata just leaves TakenAt zero.
func (s *Session) Add(paths ...string) int {
	added := 0
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			s.log.Warn("skipping image with unresolvable path", slog.String("path", p), slog.Any("err", err))
			continue
		}
		if s.Contains(abs) {
			continue
		}
		img := Image{Path: abs}
		if ts, err := probeCaptureTime(abs); err == nil {
			img.TakenAt = ts
		}
		s.images = append(s.images, img)
		added++
	}
	return added
}

// Remove deletes the image with the given path, reporting whether it existed.
func (s *Session) Remove(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for i, img := range s.images {
		if img.Path == abs {
			s.images = append(s.images[:i], s.images[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the list.
func (s *Session) Clear() { s.images = nil }

// Len returns the number of selected images.
func (s *Session) Len() int { return len(s.images) }

// Contains reports whether the absolute path is already in the list.
func (s *Session) Contains(abs string) bool {
	for _, img := range s.images {
		if img.Path == abs {
			return true
		}
	}
	return false
}

// Paths returns the image paths in list order. The slice is a copy.
func (s *Session) Paths() []string {
	out := make([]string, len(s.images))
	for i, img := range s.images {
		out[i] = img.Path
	}
	return out
}

// Images returns a copy of the image entries in list order.
func (s *Session) Images() []Image {
	return append([]Image(nil), s.images...)
}

// SortByCaptureTime stably reorders the list by EXIF capture time. Images
// without a timestamp sink to the end, keeping their insertion order.
func (s *Session) SortByCaptureTime() {
	sort.SliceStable(s.images, func(i, j int) bool {
		a, b := s.images[i].TakenAt, s.images[j].TakenAt
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.Before(b)
	})
}
