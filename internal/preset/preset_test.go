/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package preset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photogrid/internal/domain"
)

func writePapers(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, PapersFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write papers.json: %v", err)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	got, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no papers, got %d", len(got))
	}
}

func TestLoadValidFile(t *testing.T) {
	dir := t.TempDir()
	writePapers(t, dir, `{"papers":[{"name":"Panorama","width_in":12,"height_in":4}]}`)
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 paper, got %d", len(got))
	}
	p := got[0]
	if p.Name != "Panorama" || p.Width != 12 || p.Height != 4 {
		t.Fatalf("unexpected paper: %+v", p)
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing papers":  `{}`,
		"negative width":  `{"papers":[{"name":"Bad","width_in":-1,"height_in":4}]}`,
		"zero height":     `{"papers":[{"name":"Bad","width_in":4,"height_in":0}]}`,
		"empty name":      `{"papers":[{"name":"","width_in":4,"height_in":6}]}`,
		"unknown field":   `{"papers":[{"name":"X","width_in":4,"height_in":6,"dpi":300}]}`,
		"not even object": `[1,2,3]`,
	}
	for label, content := range cases {
		dir := t.TempDir()
		writePapers(t, dir, content)
		if _, err := Load(dir); err == nil {
			t.Errorf("%s: expected error", label)
		}
	}
}

func TestMergedOverridesByName(t *testing.T) {
	dir := t.TempDir()
	writePapers(t, dir, `{"papers":[{"name":"a4","width_in":8.0,"height_in":11.0},{"name":"Panorama","width_in":12,"height_in":4}]}`)

	merged := Merged(dir)
	if len(merged) != len(domain.Papers)+1 {
		t.Fatalf("merged length = %d, want %d", len(merged), len(domain.Papers)+1)
	}
	var a4 domain.Paper
	for _, p := range merged {
		if strings.EqualFold(p.Name, "a4") {
			a4 = p
		}
	}
	if a4.Width != 8.0 || a4.Height != 11.0 {
		t.Fatalf("A4 not overridden: %+v", a4)
	}
	if merged[len(merged)-1].Name != "Panorama" {
		t.Fatalf("user paper not appended: %+v", merged[len(merged)-1])
	}
}

func TestMergedFallsBackOnBrokenFile(t *testing.T) {
	dir := t.TempDir()
	writePapers(t, dir, `{"papers":`)
	merged := Merged(dir)
	if len(merged) != len(domain.Papers) {
		t.Fatalf("expected built-in table only, got %d papers", len(merged))
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	in := []domain.Paper{{Name: "Card", Width: 3.5, Height: 2}}
	if err := Save(dir, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0] != in[0] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
