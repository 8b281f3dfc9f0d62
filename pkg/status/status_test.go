// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, string) {
	dir := t.TempDir()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return New(dir, &logger), dir
}

func TestManager_ReadWrite(t *testing.T) {
	ctx := context.Background()
	m, dir := newTestManager(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "a.sh"), []byte("old"), 0755))

	got, err := m.ReadFile(ctx, "sub/a.sh")
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	require.NoError(t, m.WriteFileAtomic(ctx, "sub/a.sh", []byte("new")))

	got, err = os.ReadFile(filepath.Join(dir, "sub", "a.sh"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got), "content should be replaced")

	info, err := os.Stat(filepath.Join(dir, "sub", "a.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), "mode should be kept")

	entries, err := os.ReadDir(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestManager_ReadMissing(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.ReadFile(context.Background(), "missing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading file")
}

func TestManager_TrackAndSummary(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	m.StartOperation(ctx, 4)

	var wg sync.WaitGroup
	for _, info := range []FileInfo{
		{Path: "b.txt", Status: StatusModified, Replacements: 2, Written: true},
		{Path: "a.txt", Status: StatusModified, Replacements: 1, Written: true},
		{Path: "c.txt", Status: StatusUnchanged},
		{Path: "d.bin", Status: StatusSkipped},
	} {
		wg.Add(1)
		go func(info FileInfo) {
			defer wg.Done()
			m.TrackFile(ctx, info)
			m.UpdateProgress(ctx)
		}(info)
	}
	wg.Wait()
	m.FinishOperation(ctx)

	files := m.ListFiles(ctx)
	require.Len(t, files, 4)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt", "d.bin"}, []string{files[0].Path, files[1].Path, files[2].Path, files[3].Path})

	assert.Equal(t, Summary{
		Files:        4,
		Modified:     2,
		Unchanged:    1,
		Skipped:      1,
		Replacements: 3,
	}, m.Summary())

	info, err := m.GetFileInfo(ctx, "b.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, info.Replacements)

	_, err = m.GetFileInfo(ctx, "nope.txt")
	assert.Error(t, err)
}

func TestFileStatus_String(t *testing.T) {
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
