// Package alignment scores text samples against brand voices and personas
// using the LLM, with deterministic local checks merged in.
package alignment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avery/copydesk/internal/assembly"
	"github.com/avery/copydesk/internal/llm"
	"github.com/avery/copydesk/internal/prompts"
	"github.com/avery/copydesk/internal/schemas"
	"github.com/avery/copydesk/internal/types"
)

// Checker scores text against alignment targets.
type Checker struct {
	client llm.Client
}

// NewChecker creates a Checker using the given LLM client.
func NewChecker(client llm.Client) *Checker {
	return &Checker{client: client}
}

// APICallError represents a failure talking to the LLM.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("alignment error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("alignment error: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// scoredResponse is the wire shape both scoring prompts return.
type scoredResponse struct {
	Score           int      `json:"score"`
	Assessment      string   `json:"assessment"`
	Matches         []string `json:"matches"`
	Violations      []string `json:"violations"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
}

// CheckBrand scores text against a brand voice. The returned result always
// carries the literal input text in AnalyzedText.
func (c *Checker) CheckBrand(ctx context.Context, text string, voice *types.BrandVoice) (*types.AlignmentResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &APICallError{Message: "text is empty"}
	}
	if voice == nil {
		return nil, &APICallError{Message: "brand voice is required"}
	}

	prompt := prompts.Format(prompts.MustGet("alignment.json", "brand_alignment"), map[string]string{
		"Directives": assembly.BrandVoiceDirectives(voice),
		"Text":       text,
	})

	resp, err := c.score(ctx, prompt, schemas.BrandAlignment)
	if err != nil {
		return nil, err
	}

	result := &types.AlignmentResult{
		Score:           clampScore(resp.Score),
		Label:           ScoreLabel(clampScore(resp.Score)),
		Assessment:      resp.Assessment,
		Type:            types.AlignmentBrand,
		TargetName:      voice.BrandName,
		Matches:         resp.Matches,
		Violations:      resp.Violations,
		Recommendations: resp.Recommendations,
		AnalyzedText:    text,
	}

	// Forbidden-word hits are checked locally so they are reported even when
	// the model misses them.
	for _, word := range FindForbiddenWords(text, voice.ForbiddenWords) {
		hit := fmt.Sprintf("Uses forbidden word %q", word)
		if !containsString(result.Violations, hit) {
			result.Violations = append(result.Violations, hit)
		}
	}

	return result, nil
}

// CheckPersona scores text against a persona. The returned result always
// carries the literal input text in AnalyzedText.
func (c *Checker) CheckPersona(ctx context.Context, text string, persona *types.Persona) (*types.AlignmentResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &APICallError{Message: "text is empty"}
	}
	if persona == nil {
		return nil, &APICallError{Message: "persona is required"}
	}

	prompt := prompts.Format(prompts.MustGet("alignment.json", "persona_alignment"), map[string]string{
		"Directives": assembly.PersonaDirectives(persona),
		"Text":       text,
	})

	resp, err := c.score(ctx, prompt, schemas.PersonaAlignment)
	if err != nil {
		return nil, err
	}

	return &types.AlignmentResult{
		Score:           clampScore(resp.Score),
		Label:           ScoreLabel(clampScore(resp.Score)),
		Assessment:      resp.Assessment,
		Type:            types.AlignmentPersona,
		TargetName:      persona.Name,
		Strengths:       resp.Strengths,
		Improvements:    resp.Improvements,
		Recommendations: resp.Recommendations,
		AnalyzedText:    text,
	}, nil
}

func (c *Checker) score(ctx context.Context, prompt, schemaName string) (*scoredResponse, error) {
	raw, err := c.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate alignment score", Cause: err}
	}

	raw = llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemaName, raw); err != nil {
		return nil, &APICallError{Message: "model returned malformed alignment response", Cause: err}
	}

	var resp scoredResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, &APICallError{Message: "failed to parse alignment response", Cause: err}
	}
	return &resp, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// ScoreLabel buckets a score for panel display: 0-49 weak, 50-79 fair,
// 80-100 strong.
func ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return "strong"
	case score >= 50:
		return "fair"
	default:
		return "weak"
	}
}
