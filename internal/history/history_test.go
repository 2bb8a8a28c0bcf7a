/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenCreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = os.Stat(filepath.Join(dir, DBFileName))
	require.NoError(t, err, "expected database file")
}

func TestOpenRequiresDir(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestRecordAndRecent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	for i, mode := range []string{"single", "pages", "document"} {
		id, err := s.Record(ctx, Entry{
			Mode:        mode,
			Pages:       i + 1,
			Images:      (i + 1) * 4,
			Destination: "/tmp/out.jpg",
			Paper:       "4x6in portrait",
			Grid:        "2x2",
			DPI:         300,
		})
		require.NoError(t, err)
		require.Positive(t, id)
	}

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	require.Equal(t, "document", got[0].Mode)
	require.Equal(t, "single", got[2].Mode)
	require.Equal(t, 3, got[0].Pages)
	require.Equal(t, 12, got[0].Images)
	require.Equal(t, 300, got[0].DPI)
	require.False(t, got[0].CreatedAt.IsZero(), "CreatedAt not restored")
}

func TestRecentLimit(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, Entry{Mode: "single", Pages: 1, Images: 1, Destination: "x", Paper: "p", Grid: "g", DPI: 150})
		require.NoError(t, err)
	}
	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestRecordKeepsExplicitTimestamp(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	want := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	_, err := s.Record(ctx, Entry{CreatedAt: want, Mode: "single", Pages: 1, Images: 1, Destination: "x", Paper: "p", Grid: "g", DPI: 300})
	require.NoError(t, err)

	got, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.True(t, got[0].CreatedAt.Equal(want), "CreatedAt = %v, want %v", got[0].CreatedAt, want)
}

func TestPrune(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	for i := 0; i < 6; i++ {
		_, err := s.Record(ctx, Entry{Mode: "pages", Pages: 2, Images: 8, Destination: "x", Paper: "p", Grid: "g", DPI: 600})
		require.NoError(t, err)
	}
	removed, err := s.Prune(ctx, 2)
	require.NoError(t, err)
	require.EqualValues(t, 4, removed)

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
}
