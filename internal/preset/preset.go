/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package preset loads user-defined paper sizes from a papers.json file
// in the config directory and merges them with the built-in table.
// The file is validated against an embedded JSON schema before use so a
// malformed entry cannot poison the paper list.
package preset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"photogrid/internal/domain"
	applog "photogrid/internal/log"
)

// PapersFileName is the user paper presets file inside the config directory.
const PapersFileName = "papers.json"

//go:embed papers.schema.json
var papersSchema []byte

type papersFile struct {
	Papers []userPaper `json:"papers"`
}

type userPaper struct {
	Name     string  `json:"name"`
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
}

// Load reads user papers from dir. A missing file is not an error and
// yields an empty slice.
func Load(dir string) ([]domain.Paper, error) {
	path := filepath.Join(dir, PapersFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", PapersFileName, err)
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	var pf papersFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", PapersFileName, err)
	}

	out := make([]domain.Paper, 0, len(pf.Papers))
	for _, p := range pf.Papers {
		out = append(out, domain.Paper{
			Name:   strings.TrimSpace(p.Name),
			Width:  p.WidthIn,
			Height: p.HeightIn,
		})
	}
	return out, nil
}

func validate(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(papersSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate %s: %w", PapersFileName, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%s is invalid: %s", PapersFileName, strings.Join(msgs, "; "))
	}
	return nil
}

// Merged returns the built-in paper table followed by the user presets
// from dir. User papers with a name that collides with a built-in one
// override it. Load errors are logged and the built-in table returned,
// so a broken presets file never blocks a render.
func Merged(dir string) []domain.Paper {
	user, err := Load(dir)
	if err != nil {
		applog.WithComponent("preset").Warn("ignoring user papers", slog.Any("err", err))
		return append([]domain.Paper(nil), domain.Papers...)
	}
	merged := append([]domain.Paper(nil), domain.Papers...)
	for _, up := range user {
		replaced := false
		for i, p := range merged {
			if strings.EqualFold(p.Name, up.Name) {
				merged[i] = up
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, up)
		}
	}
	return merged
}

// Save writes the given user papers to dir, creating it if needed.
func Save(dir string, papers []domain.Paper) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	pf := papersFile{Papers: make([]userPaper, 0, len(papers))}
	for _, p := range papers {
		pf.Papers = append(pf.Papers, userPaper{Name: p.Name, WidthIn: p.Width, HeightIn: p.Height})
	}
	data, err := json.MarshalIndent(pf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", PapersFileName, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(dir, PapersFileName), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", PapersFileName, err)
	}
	return nil
}
