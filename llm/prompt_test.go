package llm

import (
	"encoding/json"
	"testing"

	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsPrompt(t *testing.T) {
	req := model.GenerationRequest{
		RepositoryURL:   "https://github.com/user/site",
		PlatformVersion: "Android 13 (Tiramisu)",
	}

	t.Run("without os", func(t *testing.T) {
		prompt, err := StepsPrompt(req)
		require.NoError(t, err)
		assert.Contains(t, prompt, "https://github.com/user/site")
		assert.Contains(t, prompt, "**Android 13 (Tiramisu)**")
		assert.NotContains(t, prompt, "The user works on")
	})

	t.Run("with os", func(t *testing.T) {
		req := req
		req.OS = guide.OSWindows
		prompt, err := StepsPrompt(req)
		require.NoError(t, err)
		assert.Contains(t, prompt, "The user works on Windows.")
	})
}

func TestStepsSchema(t *testing.T) {
	bs, err := json.Marshal(&StepsSchema)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(bs, &raw))
	assert.Equal(t, "array", raw["type"])

	items, ok := raw["items"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"title", "explanation"}, items["required"])
}
