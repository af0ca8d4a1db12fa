// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/uridoc/internal/errors"
)

func TestWriteCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "api", "API.md")

	require.NoError(t, Write(path, []byte("first\n")))
	require.NoError(t, Write(path, []byte("second\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "API.md")

	err := Check(path, []byte("a\n"))
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))
	assert.Contains(t, err.Error(), "does not exist")

	require.NoError(t, Write(path, []byte("a\nb\nc\n")))
	assert.NoError(t, Check(path, []byte("a\nb\nc\n")))

	err = Check(path, []byte("a\nB\nc\n"))
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))

	diff, ok := errors.GetAttributes(err)[errors.AttrDiff].(string)
	require.True(t, ok)
	assert.Contains(t, diff, "--- "+path)
	assert.Contains(t, diff, "+++ "+path+" (generated)")
	assert.Contains(t, diff, "-b\n")
	assert.Contains(t, diff, "+B\n")
}
