package tail_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/getsavvyinc/webtoapk/tail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, lines int) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < lines; i++ {
		id := "req-a"
		if i%2 == 1 {
			id = "req-b"
		}
		fmt.Fprintf(&b, `{"msg":"line %d","id":"%s"}`+"\n", i, id)
	}
	path := filepath.Join(t.TempDir(), "webtoapk.log")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0600))
	return path
}

func TestLines(t *testing.T) {
	t.Run("FailsOnNonExistentFile", func(t *testing.T) {
		_, err := tail.Lines(filepath.Join(t.TempDir(), "missing.log"), 10, "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("FailsOnDirectory", func(t *testing.T) {
		_, err := tail.Lines(t.TempDir(), 10, "")
		assert.Error(t, err)
	})
	t.Run("FailsOnEmptyFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.log")
		require.NoError(t, os.WriteFile(path, nil, 0600))
		_, err := tail.Lines(path, 10, "")
		assert.ErrorIs(t, err, tail.ErrEmptyFile)
	})
	t.Run("FailsOnNonPositiveN", func(t *testing.T) {
		_, err := tail.Lines(writeLog(t, 3), 0, "")
		assert.ErrorIs(t, err, tail.ErrInvalidN)
	})
	t.Run("ReturnsWholeFileWhenShort", func(t *testing.T) {
		lines, err := tail.Lines(writeLog(t, 3), 1000, "")
		require.NoError(t, err)
		assert.Len(t, lines, 3)
		assert.Contains(t, lines[0], "line 0")
	})
	t.Run("ReturnsLastNLinesAcrossBlocks", func(t *testing.T) {
		lines, err := tail.Lines(writeLog(t, 500), 3, "")
		require.NoError(t, err)
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], `"line 497"`)
		assert.Contains(t, lines[2], `"line 499"`)
	})
	t.Run("FiltersByMatch", func(t *testing.T) {
		lines, err := tail.Lines(writeLog(t, 500), 2, "req-a")
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], `"line 496"`)
		assert.Contains(t, lines[1], `"line 498"`)
	})
}
