package storage

import (
	"path/filepath"
	"testing"

	"github.com/getsavvyinc/webtoapk/config"
	"github.com/getsavvyinc/webtoapk/export"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDir(t *testing.T) {
	t.Helper()
	dir := config.DefaultConfigDir
	config.DefaultConfigDir = filepath.Join(t.TempDir(), "webtoapk")
	t.Cleanup(func() { config.DefaultConfigDir = dir })
}

func TestReadWithoutGuide(t *testing.T) {
	useTempDir(t)
	_, err := Read()
	assert.ErrorIs(t, err, ErrNoGuide)
}

func TestWriteRead(t *testing.T) {
	useTempDir(t)

	req := model.GenerationRequest{RepositoryURL: "https://github.com/user/site", PlatformVersion: "Android 13 (Tiramisu)", OS: guide.OSWindows}
	steps := []guide.Step{{Title: "Build", Body: guide.Flat{Command: "cordova build android"}}}
	require.NoError(t, Write(export.New(req, steps)))

	// a second write replaces the first
	steps[0].Title = "Build the APK"
	require.NoError(t, Write(export.New(req, steps)))

	g, err := Read()
	require.NoError(t, err)
	assert.Equal(t, req, g.Request)
	require.Len(t, g.Steps, 1)
	assert.Equal(t, "Build the APK", g.Steps[0].Title)
	assert.Equal(t, guide.Flat{Command: "cordova build android"}, g.Steps[0].Body)
}
