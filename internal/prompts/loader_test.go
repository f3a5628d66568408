package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		key      string
		wantErr  bool
	}{
		{name: "brand alignment prompt", filename: "alignment.json", key: "brand_alignment"},
		{name: "persona alignment prompt", filename: "alignment.json", key: "persona_alignment"},
		{name: "brand optimize prompt", filename: "optimize.json", key: "brand_optimize"},
		{name: "persona optimize prompt", filename: "optimize.json", key: "persona_optimize"},
		{name: "voice extraction prompt", filename: "voice.json", key: "extract_brand_voice"},
		{name: "unknown key", filename: "alignment.json", key: "nope", wantErr: true},
		{name: "unknown file", filename: "missing.json", key: "brand_alignment", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("alignment.json", "no-such-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Score this:\n{{.Text}}\nAgainst:\n{{.Directives}}"
	out := Format(template, map[string]string{
		"Text":       "Buy now.",
		"Directives": "- Tone: calm",
	})

	assert.Contains(t, out, "Buy now.")
	assert.Contains(t, out, "- Tone: calm")
	assert.NotContains(t, out, "{{.Text}}")
	assert.NotContains(t, out, "{{.Directives}}")
}

func TestScoringPromptsCarryPlaceholders(t *testing.T) {
	for _, key := range []string{"brand_alignment", "persona_alignment"} {
		prompt := MustGet("alignment.json", key)
		assert.Contains(t, prompt, "{{.Directives}}", key)
		assert.Contains(t, prompt, "{{.Text}}", key)
	}
	for _, key := range []string{"brand_optimize", "persona_optimize"} {
		prompt := MustGet("optimize.json", key)
		assert.Contains(t, prompt, "{{.Text}}", key)
		assert.Contains(t, prompt, "{{.Recommendations}}", key)
	}
}
