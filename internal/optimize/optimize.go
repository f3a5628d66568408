// Package optimize implements the rewrite-to-optimize workflow: producing a
// rewritten version of previously analyzed text and managing the
// accept/edit/reject comparison that follows.
package optimize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avery/copydesk/internal/assembly"
	"github.com/avery/copydesk/internal/format"
	"github.com/avery/copydesk/internal/llm"
	"github.com/avery/copydesk/internal/prompts"
	"github.com/avery/copydesk/internal/schemas"
	"github.com/avery/copydesk/internal/types"
)

// Request carries a prior alignment result and its target into a rewrite.
// The text operated on is always Alignment.AnalyzedText, regardless of what
// the editor selection has since become.
type Request struct {
	Alignment  *types.AlignmentResult `json:"alignment"`
	BrandVoice *types.BrandVoice      `json:"brandVoice,omitempty"`
	Persona    *types.Persona         `json:"persona,omitempty"`
}

// APICallError represents a failure talking to the LLM.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("optimize error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("optimize error: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// Service produces optimize rewrites.
type Service struct {
	client llm.Client
}

// NewService creates an optimize service using the given LLM client.
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// rewriteResponse is the wire shape the optimize prompts return.
type rewriteResponse struct {
	OptimizedCopy string   `json:"optimized_copy"`
	Changes       []string `json:"changes"`
}

// Rewrite generates an optimized version of the analyzed text.
func (s *Service) Rewrite(ctx context.Context, req *Request) (*types.OptimizeResult, error) {
	if req.Alignment == nil {
		return nil, &APICallError{Message: "alignment result is required"}
	}
	if strings.TrimSpace(req.Alignment.AnalyzedText) == "" {
		return nil, &APICallError{Message: "alignment result carries no analyzed text"}
	}

	var promptKey, directives, targetName string
	var problems []string
	switch req.Alignment.Type {
	case types.AlignmentBrand:
		if req.BrandVoice == nil {
			return nil, &APICallError{Message: "brand voice is required for brand optimization"}
		}
		promptKey = "brand_optimize"
		directives = assembly.BrandVoiceDirectives(req.BrandVoice)
		targetName = req.BrandVoice.BrandName
		problems = req.Alignment.Violations
	case types.AlignmentPersona:
		if req.Persona == nil {
			return nil, &APICallError{Message: "persona is required for persona optimization"}
		}
		promptKey = "persona_optimize"
		directives = assembly.PersonaDirectives(req.Persona)
		targetName = req.Persona.Name
		problems = req.Alignment.Improvements
	default:
		return nil, &APICallError{Message: fmt.Sprintf("unknown alignment type %q", req.Alignment.Type)}
	}

	prompt := prompts.Format(prompts.MustGet("optimize.json", promptKey), map[string]string{
		"Directives":      directives,
		"Score":           fmt.Sprintf("%d", req.Alignment.Score),
		"Assessment":      req.Alignment.Assessment,
		"Problems":        bulletList(problems),
		"Recommendations": bulletList(req.Alignment.Recommendations),
		"Text":            req.Alignment.AnalyzedText,
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate rewrite", Cause: err}
	}

	raw = llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.Optimize, raw); err != nil {
		return nil, &APICallError{Message: "model returned malformed rewrite response", Cause: err}
	}

	var resp rewriteResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, &APICallError{Message: "failed to parse rewrite response", Cause: err}
	}

	html, err := format.Normalize(resp.OptimizedCopy, false)
	if err != nil {
		return nil, &APICallError{Message: "failed to normalize rewritten HTML", Cause: err}
	}

	return &types.OptimizeResult{
		OptimizedCopy: html,
		Changes:       resp.Changes,
		TargetName:    targetName,
		TargetType:    req.Alignment.Type,
		OriginalText:  req.Alignment.AnalyzedText,
	}, nil
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- (none noted)"
	}
	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s\n", item)
	}
	return strings.TrimRight(sb.String(), "\n")
}
