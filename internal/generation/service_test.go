package generation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avery/copydesk/internal/forms"
	"github.com/avery/copydesk/internal/llm"
	"github.com/avery/copydesk/internal/types"
)

func productRequest() *Request {
	return &Request{
		TemplateID: "product-description",
		FormData: forms.FormData{
			"productName":     "Trailhead Pack",
			"productFeatures": "Waterproof, 40L",
			"targetCustomer":  "Weekend hikers",
			"tone":            "Professional",
		},
	}
}

func TestGenerate(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		"<h2>Trailhead Pack</h2><p>Built for weekend hikers.</p>",
	}}
	svc := NewService(mock)

	result, err := svc.Generate(context.Background(), productRequest())
	require.NoError(t, err)

	assert.Contains(t, result.GeneratedCopy, "<h2>Trailhead Pack</h2>")
	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "Trailhead Pack")
	assert.NotContains(t, mock.Prompts[0], "{productName}")
}

func TestGenerateStripsCodeFence(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		"```html\n<p>Clean.</p>\n```",
	}}
	svc := NewService(mock)

	result, err := svc.Generate(context.Background(), productRequest())
	require.NoError(t, err)
	assert.Equal(t, "<p>Clean.</p>", result.GeneratedCopy)
}

func TestGenerateSanitizesOutput(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{
		`<p>Safe.</p><script>alert(1)</script>`,
	}}
	svc := NewService(mock)

	result, err := svc.Generate(context.Background(), productRequest())
	require.NoError(t, err)
	assert.Contains(t, result.GeneratedCopy, "<p>Safe.</p>")
	assert.NotContains(t, result.GeneratedCopy, "script")
}

func TestGenerateValidationBlocksModelCall(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{"<p>should never be returned</p>"}}
	svc := NewService(mock)

	req := productRequest()
	delete(req.FormData, "productName")

	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "productName")

	// Nothing was sent upstream.
	assert.Empty(t, mock.Prompts)
}

func TestGenerateUnknownTemplate(t *testing.T) {
	svc := NewService(&llm.MockClient{})

	_, err := svc.Generate(context.Background(), &Request{TemplateID: "nope"})
	require.Error(t, err)

	var tplErr *UnknownTemplateError
	require.ErrorAs(t, err, &tplErr)
	assert.Equal(t, "nope", tplErr.TemplateID)
}

func TestGenerateUpstreamErrorSurfaced(t *testing.T) {
	upstream := errors.New("rate limited")
	svc := NewService(&llm.MockClient{Err: upstream})

	_, err := svc.Generate(context.Background(), productRequest())
	require.Error(t, err)

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, upstream)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestGenerateEmptyModelOutput(t *testing.T) {
	svc := NewService(&llm.MockClient{Responses: []string{"   "}})

	_, err := svc.Generate(context.Background(), productRequest())
	require.Error(t, err)

	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestGenerateRawPromptBypassesForm(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{"<p>Raw result.</p>"}}
	svc := NewService(mock)

	result, err := svc.Generate(context.Background(), &Request{
		Prompt: "Write one sentence about backpacks.",
	})
	require.NoError(t, err)

	assert.Equal(t, "<p>Raw result.</p>", result.GeneratedCopy)
	require.Len(t, mock.Prompts, 1)
	assert.Equal(t, "Write one sentence about backpacks.", mock.Prompts[0])
}

func TestGenerateBrandVoiceGating(t *testing.T) {
	voice := &types.BrandVoice{BrandName: "Acme", Tone: "Confident"}

	t.Run("voice ignored unless applied", func(t *testing.T) {
		mock := &llm.MockClient{Responses: []string{"<p>ok</p>"}}
		req := productRequest()
		req.BrandVoice = voice

		_, err := NewService(mock).Generate(context.Background(), req)
		require.NoError(t, err)
		assert.NotContains(t, mock.Prompts[0], "Brand: Acme")
	})

	t.Run("voice included when applied", func(t *testing.T) {
		mock := &llm.MockClient{Responses: []string{"<p>ok</p>"}}
		req := productRequest()
		req.BrandVoice = voice
		req.ApplyBrandVoice = true

		_, err := NewService(mock).Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Contains(t, mock.Prompts[0], "Brand: Acme")
	})
}

func TestAssemblePreview(t *testing.T) {
	prompt, err := AssemblePreview(productRequest())
	require.NoError(t, err)
	assert.Contains(t, prompt, "Trailhead Pack")
	assert.NotContains(t, prompt, "{productName}")

	_, err = AssemblePreview(&Request{TemplateID: "nope"})
	assert.Error(t, err)

	raw, err := AssemblePreview(&Request{Prompt: "verbatim"})
	require.NoError(t, err)
	assert.Equal(t, "verbatim", raw)
}

func TestValidationErrorMarshalFields(t *testing.T) {
	valErr := &ValidationError{Fields: forms.Errors{"tone": "Tone is required"}}
	assert.JSONEq(t, `{"tone": "Tone is required"}`, string(valErr.MarshalFields()))
}

func TestDedupeKey(t *testing.T) {
	a := dedupeKey("prompt", llm.TierStandard)
	b := dedupeKey("prompt", llm.TierStandard)
	c := dedupeKey("prompt", llm.TierAdvanced)
	d := dedupeKey("other prompt", llm.TierStandard)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}

// gateClient blocks GenerateContent until released, honoring the call
// context, and counts upstream calls.
type gateClient struct {
	started  chan struct{}
	release  chan struct{}
	response string

	mu    sync.Mutex
	calls int
}

func newGateClient(response string) *gateClient {
	return &gateClient{
		started:  make(chan struct{}),
		release:  make(chan struct{}),
		response: response,
	}
}

func (c *gateClient) GenerateContent(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
	c.mu.Lock()
	c.calls++
	if c.calls == 1 {
		close(c.started)
	}
	c.mu.Unlock()

	select {
	case <-c.release:
		return c.response, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *gateClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateContent(ctx, prompt, tier)
}

func (c *gateClient) GetModel(tier llm.ModelTier) string { return "gate-" + string(tier) }

func (c *gateClient) Close() error { return nil }

func (c *gateClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestGenerateDedupeSurvivesFirstCallerCancel(t *testing.T) {
	client := newGateClient("<h2>Trailhead Pack</h2><p>Shared result.</p>")
	svc := NewService(client)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()

	type outcome struct {
		result *Result
		err    error
	}
	first := make(chan outcome, 1)
	second := make(chan outcome, 1)

	go func() {
		result, err := svc.Generate(firstCtx, productRequest())
		first <- outcome{result, err}
	}()

	// Wait until the first caller's upstream call is in flight, then let an
	// identical request join it.
	<-client.started
	go func() {
		result, err := svc.Generate(context.Background(), productRequest())
		second <- outcome{result, err}
	}()

	// Give the second caller time to join the flight before the first caller
	// goes away.
	time.Sleep(50 * time.Millisecond)
	cancelFirst()
	time.Sleep(50 * time.Millisecond)
	close(client.release)

	got := <-second
	require.NoError(t, got.err, "surviving caller must get the shared result")
	assert.Contains(t, got.result.GeneratedCopy, "Shared result")

	<-first
	assert.Equal(t, 1, client.callCount(), "identical requests share one upstream call")
}
