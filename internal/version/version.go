/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

// Package version exposes the application version. The value is overridden
// at release time via -ldflags "-X photogrid/internal/version.Version=...".
package version

import "fmt"

// Version is the semantic version of the build.
var Version = "0.3.0-dev"

// Commit is the short VCS revision, if known at build time.
var Commit = ""

// String returns the human-readable version string.
func String() string {
	if Commit != "" {
		return fmt.Sprintf("%s (%s)", Version, Commit)
	}
	return Version
}
