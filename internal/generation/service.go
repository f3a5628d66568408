// Package generation turns a template selection plus form data into
// generated HTML copy.
package generation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/avery/copydesk/internal/assembly"
	"github.com/avery/copydesk/internal/catalog"
	"github.com/avery/copydesk/internal/format"
	"github.com/avery/copydesk/internal/forms"
	"github.com/avery/copydesk/internal/llm"
	"github.com/avery/copydesk/internal/types"
)

// Request carries everything needed to generate copy from a template. If
// Prompt is set it overrides template assembly entirely.
type Request struct {
	TemplateID      string            `json:"templateId"`
	FormData        forms.FormData    `json:"formData,omitempty"`
	Prompt          string            `json:"prompt,omitempty"`
	ApplyBrandVoice bool              `json:"applyBrandVoice,omitempty"`
	BrandVoice      *types.BrandVoice `json:"brandVoice,omitempty"`
	Persona         *types.Persona    `json:"persona,omitempty"`
}

// Result is the outcome of a generation call.
type Result struct {
	GeneratedCopy string `json:"generatedCopy"`
	Prompt        string `json:"-"`
}

// ValidationError reports field-scoped validation failures. It blocks
// generation; nothing was sent to the model.
type ValidationError struct {
	Fields forms.Errors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	return fmt.Sprintf("form validation failed for fields: %s", strings.Join(keys, ", "))
}

// UnknownTemplateError indicates the catalog has no such template.
type UnknownTemplateError struct {
	TemplateID string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template: %s", e.TemplateID)
}

// APICallError represents a failure talking to the LLM.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation error: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// Service generates copy. Identical concurrent requests are deduplicated so
// a double-submit fires one upstream call; both callers get the same result.
type Service struct {
	client llm.Client
	group  singleflight.Group
}

// NewService creates a generation service using the given LLM client.
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// Generate validates, assembles, and runs one generation request. Identical
// concurrent requests share one upstream call, and that call outlives any
// single caller's context.
func (s *Service) Generate(ctx context.Context, req *Request) (*Result, error) {
	tpl := catalog.Get(req.TemplateID)
	if tpl == nil && req.Prompt == "" {
		return nil, &UnknownTemplateError{TemplateID: req.TemplateID}
	}

	var prompt string
	tier := llm.TierStandard

	if req.Prompt != "" {
		prompt = req.Prompt
		if tpl != nil {
			tier = llm.TierForComplexity(tpl.Complexity)
		}
	} else {
		if errs := forms.Validate(tpl, req.FormData); !errs.Valid() {
			return nil, &ValidationError{Fields: errs}
		}

		resolved := forms.Resolve(tpl, req.FormData)

		voice := req.BrandVoice
		if !req.ApplyBrandVoice {
			voice = nil
		}
		prompt = assembly.Assemble(tpl, resolved, voice, req.Persona)
		tier = llm.TierForComplexity(tpl.Complexity)
	}

	// The shared call runs detached from any single caller's context: one
	// caller cancelling must not fail the others joined on the same flight.
	sharedCtx := context.WithoutCancel(ctx)
	raw, err, _ := s.group.Do(dedupeKey(prompt, tier), func() (any, error) {
		out, genErr := s.client.GenerateContent(sharedCtx, prompt, tier)
		if genErr != nil {
			return nil, &APICallError{Message: "failed to generate copy", Cause: genErr}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	emailMode := tpl != nil && tpl.Renderer == catalog.RendererEmailPreview
	html, err := format.Normalize(llm.CleanHTMLBlock(raw.(string)), emailMode)
	if err != nil {
		return nil, &APICallError{Message: "failed to normalize generated HTML", Cause: err}
	}
	if strings.TrimSpace(html) == "" {
		return nil, &APICallError{Message: "model returned empty copy"}
	}

	return &Result{GeneratedCopy: html, Prompt: prompt}, nil
}

// dedupeKey fingerprints a generation so identical concurrent submissions
// share one in-flight call.
func dedupeKey(prompt string, tier llm.ModelTier) string {
	sum := sha256.Sum256([]byte(string(tier) + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}

// AssemblePreview returns the prompt a request would send, without calling
// the model. Used by the CLI's dry-run flag and by tests.
func AssemblePreview(req *Request) (string, error) {
	if req.Prompt != "" {
		return req.Prompt, nil
	}
	tpl := catalog.Get(req.TemplateID)
	if tpl == nil {
		return "", &UnknownTemplateError{TemplateID: req.TemplateID}
	}
	if errs := forms.Validate(tpl, req.FormData); !errs.Valid() {
		return "", &ValidationError{Fields: errs}
	}
	resolved := forms.Resolve(tpl, req.FormData)
	voice := req.BrandVoice
	if !req.ApplyBrandVoice {
		voice = nil
	}
	return assembly.Assemble(tpl, resolved, voice, req.Persona), nil
}

// MarshalFields renders a ValidationError's field map as JSON for the
// response details payload.
func (e *ValidationError) MarshalFields() json.RawMessage {
	data, err := json.Marshal(e.Fields)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return data
}
