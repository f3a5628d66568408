package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		exists bool
	}{
		{name: "known template", id: "product-description", exists: true},
		{name: "strategic wizard", id: "brand-messaging", exists: true},
		{name: "unknown template", id: "does-not-exist", exists: false},
		{name: "empty id", id: "", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := Get(tt.id)
			if tt.exists {
				require.NotNil(t, tpl)
				assert.Equal(t, tt.id, tpl.ID)
			} else {
				assert.Nil(t, tpl)
			}
		})
	}
}

func TestList(t *testing.T) {
	all := List()
	require.NotEmpty(t, all)

	seen := make(map[string]bool)
	for _, tpl := range all {
		assert.NotEmpty(t, tpl.ID)
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Prompt)
		assert.False(t, seen[tpl.ID], "duplicate template ID %s", tpl.ID)
		seen[tpl.ID] = true
	}
}

func TestListByCategory(t *testing.T) {
	rewriting := ListByCategory("rewriting")
	require.NotEmpty(t, rewriting)
	for _, tpl := range rewriting {
		assert.Equal(t, "rewriting", tpl.Category)
	}

	assert.Empty(t, ListByCategory("no-such-category"))
}

func TestFieldHasOtherOption(t *testing.T) {
	tpl := Get("product-description")
	require.NotNil(t, tpl)

	tone := tpl.Field("tone")
	require.NotNil(t, tone)
	assert.True(t, tone.HasOtherOption())
	assert.Equal(t, "tone_other", tone.OtherKey())

	name := tpl.Field("productName")
	require.NotNil(t, name)
	assert.False(t, name.HasOtherOption())
}

func TestStepFields(t *testing.T) {
	tpl := Get("brand-messaging")
	require.NotNil(t, tpl)
	require.Len(t, tpl.Steps, 2)

	step0, err := tpl.StepFields(0)
	require.NoError(t, err)
	require.Len(t, step0, 3)
	assert.Equal(t, "brandName", step0[0].ID)

	step1, err := tpl.StepFields(1)
	require.NoError(t, err)
	require.Len(t, step1, 3)
	assert.Equal(t, "tonePreference", step1[2].ID)

	_, err = tpl.StepFields(2)
	assert.Error(t, err)
}

func TestStepFieldsWithoutSteps(t *testing.T) {
	tpl := Get("product-description")
	require.NotNil(t, tpl)
	require.Empty(t, tpl.Steps)

	// Step 0 of a stepless template is the full form.
	fields, err := tpl.StepFields(0)
	require.NoError(t, err)
	assert.Len(t, fields, len(tpl.Fields))

	_, err = tpl.StepFields(1)
	assert.Error(t, err)
}

func TestEveryFieldPlaceholderAppearsInPrompt(t *testing.T) {
	for _, tpl := range List() {
		t.Run(tpl.ID, func(t *testing.T) {
			for _, f := range tpl.Fields {
				assert.Contains(t, tpl.Prompt, "{"+f.ID+"}",
					"field %s has no placeholder in prompt", f.ID)
			}
		})
	}
}
