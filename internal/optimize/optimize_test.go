package optimize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avery/copydesk/internal/llm"
	"github.com/avery/copydesk/internal/types"
)

func brandAlignment() *types.AlignmentResult {
	return &types.AlignmentResult{
		Score:           55,
		Assessment:      "Mixed",
		Type:            types.AlignmentBrand,
		TargetName:      "Acme",
		Violations:      []string{`Uses forbidden word "synergy"`},
		Recommendations: []string{"Replace jargon with plain language"},
		AnalyzedText:    "Our synergy unlocks value.",
	}
}

func TestRewriteBrand(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"optimized_copy": "<p>We help teams ship faster.</p>", "changes": ["removed jargon"]}`,
	}}
	svc := NewService(mock)

	result, err := svc.Rewrite(context.Background(), &Request{
		Alignment:  brandAlignment(),
		BrandVoice: &types.BrandVoice{BrandName: "Acme", Tone: "Plain"},
	})
	require.NoError(t, err)

	assert.Equal(t, "<p>We help teams ship faster.</p>", result.OptimizedCopy)
	assert.Equal(t, []string{"removed jargon"}, result.Changes)
	assert.Equal(t, "Acme", result.TargetName)
	assert.Equal(t, types.AlignmentBrand, result.TargetType)
	assert.Equal(t, "Our synergy unlocks value.", result.OriginalText)

	// The prompt carried the prior review's findings and the analyzed text.
	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "Our synergy unlocks value.")
	assert.Contains(t, mock.Prompts[0], `Uses forbidden word "synergy"`)
	assert.Contains(t, mock.Prompts[0], "Replace jargon with plain language")
	assert.Contains(t, mock.Prompts[0], "score 55/100")
}

func TestRewritePersona(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`{"optimized_copy": "<p>No more 2am pages.</p>", "changes": ["used audience vocabulary"]}`,
	}}
	svc := NewService(mock)

	result, err := svc.Rewrite(context.Background(), &Request{
		Alignment: &types.AlignmentResult{
			Score:        40,
			Assessment:   "Too formal",
			Type:         types.AlignmentPersona,
			TargetName:   "Dana",
			Improvements: []string{"Speak to pager fatigue"},
			AnalyzedText: "Our platform reduces operational burden.",
		},
		Persona: &types.Persona{Name: "Dana", PainPoints: []string{"pager fatigue"}},
	})
	require.NoError(t, err)

	assert.Equal(t, types.AlignmentPersona, result.TargetType)
	assert.Equal(t, "Dana", result.TargetName)
	assert.Contains(t, mock.Prompts[0], "Speak to pager fatigue")
}

func TestRewriteRequiresTarget(t *testing.T) {
	svc := NewService(&llm.MockClient{})

	t.Run("brand alignment needs brand voice", func(t *testing.T) {
		_, err := svc.Rewrite(context.Background(), &Request{Alignment: brandAlignment()})
		assert.Error(t, err)
	})

	t.Run("persona alignment needs persona", func(t *testing.T) {
		a := brandAlignment()
		a.Type = types.AlignmentPersona
		_, err := svc.Rewrite(context.Background(), &Request{Alignment: a})
		assert.Error(t, err)
	})

	t.Run("nil alignment", func(t *testing.T) {
		_, err := svc.Rewrite(context.Background(), &Request{})
		assert.Error(t, err)
	})

	t.Run("alignment without analyzed text", func(t *testing.T) {
		a := brandAlignment()
		a.AnalyzedText = "  "
		_, err := svc.Rewrite(context.Background(), &Request{
			Alignment:  a,
			BrandVoice: &types.BrandVoice{BrandName: "Acme"},
		})
		assert.Error(t, err)
	})

	t.Run("unknown alignment type", func(t *testing.T) {
		a := brandAlignment()
		a.Type = "vibes"
		_, err := svc.Rewrite(context.Background(), &Request{Alignment: a})
		assert.Error(t, err)
	})
}

func TestRewriteUpstreamError(t *testing.T) {
	upstream := errors.New("quota exhausted")
	svc := NewService(&llm.MockClient{Err: upstream})

	_, err := svc.Rewrite(context.Background(), &Request{
		Alignment:  brandAlignment(),
		BrandVoice: &types.BrandVoice{BrandName: "Acme"},
	})
	require.Error(t, err)

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, upstream)
}

func TestRewriteMalformedResponse(t *testing.T) {
	svc := NewService(&llm.MockClient{Responses: []string{`{"changes": []}`}})

	_, err := svc.Rewrite(context.Background(), &Request{
		Alignment:  brandAlignment(),
		BrandVoice: &types.BrandVoice{BrandName: "Acme"},
	})
	assert.Error(t, err)
}

func TestRewriteSanitizesOutput(t *testing.T) {
	svc := NewService(&llm.MockClient{Responses: []string{
		`{"optimized_copy": "<p>Clean.</p><script>alert(1)</script>", "changes": []}`,
	}})

	result, err := svc.Rewrite(context.Background(), &Request{
		Alignment:  brandAlignment(),
		BrandVoice: &types.BrandVoice{BrandName: "Acme"},
	})
	require.NoError(t, err)
	assert.NotContains(t, result.OptimizedCopy, "script")
	assert.Contains(t, result.OptimizedCopy, "<p>Clean.</p>")
}

func TestBulletList(t *testing.T) {
	assert.Equal(t, "- (none noted)", bulletList(nil))
	assert.Equal(t, "- a\n- b", bulletList([]string{"a", "b"}))
}
