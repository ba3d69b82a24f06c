package markdown

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGuide() (model.GenerationRequest, []guide.Step) {
	req := model.GenerationRequest{
		RepositoryURL:   "https://github.com/user/site",
		PlatformVersion: "Android 14 (Upside Down Cake)",
	}
	steps := []guide.Step{
		{
			Title:       "Install Cordova",
			Explanation: "Install the tools.",
			Body: guide.Flat{
				Command: "npm install -g cordova",
				Details: "1. Open a terminal a. any terminal works",
				Actions: []guide.Action{
					{Label: "Download Node.js (LTS)", Kind: guide.ActionLink, Value: "https://nodejs.org/"},
				},
			},
		},
		{
			Title: "Environment",
			Body: guide.OSBranching{
				MacOSLinux: guide.Content{
					Explanation: "Edit your shell profile.",
					Details:     "--- Where is the SDK ---",
					Actions: []guide.Action{
						{Label: "Check shell", Kind: guide.ActionCommand, Value: "echo $SHELL", Group: "shell_check"},
					},
				},
				Windows: guide.Content{Explanation: "Use the system settings."},
			},
		},
	}
	return req, steps
}

func TestRender(t *testing.T) {
	req, steps := testGuide()

	t.Run("no os renders both branches", func(t *testing.T) {
		md, err := Render(req, steps)
		require.NoError(t, err)
		assert.Contains(t, md, "## 1. Install Cordova")
		assert.Contains(t, md, "~~~sh\nnpm install -g cordova\n~~~")
		assert.Contains(t, md, "1. Open a terminal")
		assert.Contains(t, md, "    - a. any terminal works")
		assert.Contains(t, md, "- [Download Node.js (LTS)](https://nodejs.org/)")
		assert.Contains(t, md, "## 2. Environment")
		assert.Contains(t, md, "### macOS / Linux")
		assert.Contains(t, md, "### Windows")
		assert.Contains(t, md, "**Where is the SDK**")
		assert.Contains(t, md, "**Identify your shell**")
		assert.Contains(t, md, "echo $SHELL")
	})

	t.Run("os picks one branch", func(t *testing.T) {
		req := req
		req.OS = guide.OSWindows
		md, err := Render(req, steps)
		require.NoError(t, err)
		assert.Contains(t, md, "Operating system: Windows")
		assert.Contains(t, md, "Use the system settings.")
		assert.NotContains(t, md, "Edit your shell profile.")
		assert.NotContains(t, md, "### Windows")
	})
}

func TestToMarkdownFile(t *testing.T) {
	req, steps := testGuide()
	dir := t.TempDir()

	var copied string
	s := NewService(WithDir(dir), WithClipboard(func(s string) error {
		copied = s
		return nil
	})).(*svc)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC) }

	res, err := s.ToMarkdownFile(req, steps)
	require.NoError(t, err)
	assert.True(t, res.Copied)
	assert.Contains(t, res.Path, "webtoapk_2024_03_01_10_30_00.md")

	bs, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, copied, string(bs))

	s.clipboard = func(string) error { return errors.New("no clipboard") }
	res, err = s.ToMarkdownFile(req, steps)
	require.NoError(t, err)
	assert.False(t, res.Copied)
}

func TestRenderNoSteps(t *testing.T) {
	req, _ := testGuide()
	md, err := Render(req, []guide.Step{})
	require.NoError(t, err)
	assert.Contains(t, md, req.RepositoryURL)
	assert.Contains(t, md, "_No steps were generated for this repository._")
}
