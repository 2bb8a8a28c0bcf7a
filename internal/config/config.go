/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads and saves the user-editable YAML configuration:
// default form values for new sessions, the ImageMagick binary override, and
// logging/telemetry options. Environment variables act as read-only
// overrides at runtime.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultsConfig holds the initial form values applied to a new session.
// Paper and layout are menu labels from the domain preset tables; unknown
// labels fall back to the built-in defaults at use time.
type DefaultsConfig struct {
	Paper       string `yaml:"paper"`
	Orientation string `yaml:"orientation"`
	DPI         int    `yaml:"dpi"`
	Layout      string `yaml:"layout"`
	Border      int    `yaml:"border"`
	Spacing     int    `yaml:"spacing"`
	Margin      int    `yaml:"margin"`
	Background  string `yaml:"background"`
	BorderColor string `yaml:"border_color"`
	Fill        string `yaml:"fill"` // "fit" or "crop"
}

type ToolsConfig struct {
	// Magick overrides the ImageMagick binary name or path ("magick" when empty).
	Magick string `yaml:"magick"`
}

type GeneralConfig struct {
	TelemetryOptIn bool `yaml:"telemetry_opt_in"`
	// HistoryDisabled turns off the local render history database.
	HistoryDisabled bool `yaml:"history_disabled"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	General       GeneralConfig  `yaml:"general"`
	Defaults      DefaultsConfig `yaml:"defaults"`
	Tools         ToolsConfig    `yaml:"tools"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false},
		Defaults: DefaultsConfig{
			Paper:       "A4",
			Orientation: "portrait",
			DPI:         300,
			Layout:      "2 x 2 (4)",
			Border:      2,
			Spacing:     4,
			Margin:      20,
			Background:  "white",
			BorderColor: "black",
			Fill:        "fit",
		},
		Tools:   ToolsConfig{Magick: ""},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvMagick         = "PG_MAGICK"
	EnvTelemetryOptIn = "PG_TELEMETRY_OPT_IN"
	EnvHistoryOff     = "PG_HISTORY_OFF"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "PG_LOG_LEVEL"
	EnvLogFormat = "PG_LOG_FORMAT"
	EnvLogSource = "PG_LOG_SOURCE"
	EnvLogFile   = "PG_LOG_FILE"
)

// ConfigDir returns the per-user configuration directory.
func ConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "PhotoGrid")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "PhotoGrid")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "photogrid")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	dst.General.HistoryDisabled = src.General.HistoryDisabled

	d := &src.Defaults
	if strings.TrimSpace(d.Paper) != "" {
		dst.Defaults.Paper = strings.TrimSpace(d.Paper)
	}
	if strings.TrimSpace(d.Orientation) != "" {
		dst.Defaults.Orientation = strings.ToLower(strings.TrimSpace(d.Orientation))
	}
	if d.DPI != 0 {
		dst.Defaults.DPI = d.DPI
	}
	if strings.TrimSpace(d.Layout) != "" {
		dst.Defaults.Layout = strings.TrimSpace(d.Layout)
	}
	if d.Border != 0 {
		dst.Defaults.Border = d.Border
	}
	if d.Spacing != 0 {
		dst.Defaults.Spacing = d.Spacing
	}
	if d.Margin != 0 {
		dst.Defaults.Margin = d.Margin
	}
	if strings.TrimSpace(d.Background) != "" {
		dst.Defaults.Background = strings.TrimSpace(d.Background)
	}
	if strings.TrimSpace(d.BorderColor) != "" {
		dst.Defaults.BorderColor = strings.TrimSpace(d.BorderColor)
	}
	if strings.TrimSpace(d.Fill) != "" {
		dst.Defaults.Fill = strings.ToLower(strings.TrimSpace(d.Fill))
	}

	if strings.TrimSpace(src.Tools.Magick) != "" {
		dst.Tools.Magick = strings.TrimSpace(src.Tools.Magick)
	}

	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvMagick)); v != "" {
		cfg.Tools.Magick = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistoryOff)); v != "" {
		cfg.General.HistoryDisabled = parseBool(v)
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "tools.magick":
		if os.Getenv(EnvMagick) != "" {
			return EnvMagick, true
		}
	case "general.telemetry_opt_in":
		if os.Getenv(EnvTelemetryOptIn) != "" {
			return EnvTelemetryOptIn, true
		}
	case "general.history_disabled":
		if os.Getenv(EnvHistoryOff) != "" {
			return EnvHistoryOff, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
