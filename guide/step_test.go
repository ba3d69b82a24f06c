package guide

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const osSpecificStep = `{
  "title": "Step 3: Environment",
  "explanation": "Pick your OS.",
  "command": "ignored",
  "isOsSpecific": true,
  "osInstructions": {
    "macos_linux": {
      "explanation": "Follow this checklist:",
      "details": "--- nano ---",
      "actions": [{"label": "Open .zshrc", "type": "command", "value": "nano ~/.zshrc", "group": "zshrc_setup"}]
    },
    "windows": {
      "explanation": "Set the variables by hand.",
      "details": "1. Open settings."
    }
  }
}`

func TestDecodeSteps(t *testing.T) {
	t.Run("minimal step", func(t *testing.T) {
		steps, err := DecodeSteps([]byte(`[{"title":"T","explanation":"E"}]`))
		require.NoError(t, err)
		require.Len(t, steps, 1)
		assert.Equal(t, Step{Title: "T", Explanation: "E", Body: Flat{}}, steps[0])
		assert.False(t, steps[0].IsOSSpecific())
	})

	t.Run("flat step with actions", func(t *testing.T) {
		steps, err := DecodeSteps([]byte(`[{"title":"T","explanation":"E","command":"npm install -g cordova","details":"d",
			"actions":[{"label":"Node.js","type":"link","value":"https://nodejs.org/"}]}]`))
		require.NoError(t, err)
		f, ok := steps[0].Flat()
		require.True(t, ok)
		assert.Equal(t, "npm install -g cordova", f.Command)
		assert.Equal(t, "d", f.Details)
		assert.Equal(t, []Action{{Label: "Node.js", Kind: ActionLink, Value: "https://nodejs.org/"}}, f.Actions)
	})

	t.Run("os specific step", func(t *testing.T) {
		steps, err := DecodeSteps([]byte("[" + osSpecificStep + "]"))
		require.NoError(t, err)
		b, ok := steps[0].Branching()
		require.True(t, ok)
		_, isFlat := steps[0].Flat()
		assert.False(t, isFlat)
		assert.Equal(t, "Follow this checklist:", b.MacOSLinux.Explanation)
		assert.Equal(t, "Set the variables by hand.", b.Windows.Explanation)
		assert.Len(t, b.MacOSLinux.Actions, 1)
	})

	t.Run("os flag without instructions stays flat", func(t *testing.T) {
		steps, err := DecodeSteps([]byte(`[{"title":"T","explanation":"E","isOsSpecific":true,"command":"ls"}]`))
		require.NoError(t, err)
		f, ok := steps[0].Flat()
		require.True(t, ok)
		assert.Equal(t, "ls", f.Command)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := DecodeSteps([]byte(`{"title":"T"}`))
		assert.Error(t, err)
		_, err = DecodeSteps([]byte(`null`))
		assert.ErrorIs(t, err, ErrNotAnArray)
	})
}

func TestStepEncodingKeepsOneRepresentation(t *testing.T) {
	var s Step
	require.NoError(t, json.Unmarshal([]byte(osSpecificStep), &s))

	bs, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(bs, &raw))
	assert.NotContains(t, raw, "command")
	assert.Equal(t, true, raw["isOsSpecific"])

	var back Step
	require.NoError(t, json.Unmarshal(bs, &back))
	assert.Equal(t, s, back)
}

func TestStepYAML(t *testing.T) {
	steps := []Step{
		{Title: "Build", Explanation: "Build it.", Body: Flat{Command: "cordova build android"}},
		{Title: "Env", Explanation: "Pick.", Body: OSBranching{
			MacOSLinux: Content{Explanation: "mac"},
			Windows:    Content{Explanation: "win", Details: "1. a"},
		}},
	}

	bs, err := yaml.Marshal(steps)
	require.NoError(t, err)
	assert.Contains(t, string(bs), "isOsSpecific: true")
	assert.Contains(t, string(bs), "command: cordova build android")

	var back []Step
	require.NoError(t, yaml.Unmarshal(bs, &back))
	assert.Equal(t, steps, back)
}

func TestStepPage(t *testing.T) {
	var s Step
	require.NoError(t, json.Unmarshal([]byte(osSpecificStep), &s))

	t.Run("no os chosen", func(t *testing.T) {
		p := s.Page(OSUnspecified)
		assert.True(t, p.OSSpecific)
		assert.True(t, p.NeedsOS)
		assert.Empty(t, p.Groups)
		assert.Empty(t, p.Command)
	})

	t.Run("macos", func(t *testing.T) {
		p := s.Page(OSMacOSLinux)
		assert.False(t, p.NeedsOS)
		assert.Equal(t, "Pick your OS.\n\nFollow this checklist:", p.Explanation)
		require.Len(t, p.Groups, 1)
		assert.Equal(t, StageSetupFiles, p.Groups[0].Stage)
		require.Len(t, p.Details, 1)
		assert.Equal(t, "nano", p.Details[0].Text)
	})

	t.Run("flat step ignores os", func(t *testing.T) {
		flat := Step{Title: "T", Explanation: "E", Body: Flat{Command: "  cordova requirements  ", Details: "1. Check"}}
		p := flat.Page(OSWindows)
		assert.False(t, p.OSSpecific)
		assert.Equal(t, "cordova requirements", p.Command)
		assert.Len(t, p.Details, 1)
	})
}

func TestActionValidate(t *testing.T) {
	testCases := []struct {
		name    string
		action  Action
		wantErr bool
	}{
		{"command", Action{Label: "Copy", Kind: ActionCommand, Value: "echo $ANDROID_HOME"}, false},
		{"link", Action{Label: "Studio", Kind: ActionLink, Value: "https://developer.android.com/studio"}, false},
		{"link without scheme", Action{Label: "Studio", Kind: ActionLink, Value: "developer.android.com"}, true},
		{"unknown kind", Action{Label: "x", Kind: "run", Value: "ls"}, true},
		{"empty value", Action{Label: "x", Kind: ActionCommand, Value: " "}, true},
		{"empty label", Action{Kind: ActionCommand, Value: "ls"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.action.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAction)
				return
			}
			assert.NoError(t, err)
		})
	}
}
