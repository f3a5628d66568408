// Package voice drafts brand voice profiles from a company's own website
// copy.
package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avery/copydesk/internal/fetch"
	"github.com/avery/copydesk/internal/llm"
	"github.com/avery/copydesk/internal/prompts"
	"github.com/avery/copydesk/internal/schemas"
	"github.com/avery/copydesk/internal/types"
)

// maxCorpusChars caps how much page text is sent to the model.
const maxCorpusChars = 20000

// ImportOptions configures a website import.
type ImportOptions struct {
	// UseBrowser forces headless rendering even when the plain fetch looks
	// complete.
	UseBrowser bool
	Verbose    bool
}

// ImportError represents a failure during brand voice import.
type ImportError struct {
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("voice import error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("voice import error: %s", e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// Importer drafts brand voices from fetched website text.
type Importer struct {
	client llm.Client
}

// NewImporter creates an Importer using the given LLM client.
func NewImporter(client llm.Client) *Importer {
	return &Importer{client: client}
}

// FromURL fetches a page, extracts its main text, and asks the model to
// draft a brand voice profile. Script-rendered pages fall back to headless
// browser rendering. The draft is returned for review, never auto-saved.
func (i *Importer) FromURL(ctx context.Context, url string, opts *ImportOptions) (*types.BrandVoiceDraft, error) {
	if opts == nil {
		opts = &ImportOptions{}
	}

	result, err := fetch.URL(ctx, url, nil)
	if err != nil {
		return nil, &ImportError{Message: "failed to fetch page", Cause: err}
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.BrandPageSelectors())
	if err != nil {
		return nil, &ImportError{Message: "failed to extract page text", Cause: err}
	}

	if opts.UseBrowser || fetch.ShouldUseBrowser(text) {
		html, berr := fetch.WithBrowser(ctx, url, 30*time.Second, opts.Verbose)
		if berr == nil {
			if rendered, xerr := fetch.ExtractMainText(html, fetch.BrandPageSelectors()); xerr == nil && len(rendered) > len(text) {
				text = rendered
			}
		}
		// Browser failures fall through to whatever the plain fetch yielded.
	}

	if strings.TrimSpace(text) == "" {
		return nil, &ImportError{Message: "page yielded no usable text"}
	}
	text = truncateCorpus(text, maxCorpusChars)

	return i.FromCorpus(ctx, url, text)
}

// truncateCorpus caps text at max bytes without splitting a UTF-8 rune.
func truncateCorpus(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// FromCorpus drafts a brand voice from already-extracted text.
func (i *Importer) FromCorpus(ctx context.Context, url, corpus string) (*types.BrandVoiceDraft, error) {
	prompt := prompts.Format(prompts.MustGet("voice.json", "extract_brand_voice"), map[string]string{
		"URL":    url,
		"Corpus": corpus,
	})

	raw, err := i.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &ImportError{Message: "failed to generate brand voice draft", Cause: err}
	}

	raw = llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.BrandVoiceDraft, raw); err != nil {
		return nil, &ImportError{Message: "model returned malformed brand voice draft", Cause: err}
	}

	var wire struct {
		BrandName        string   `json:"brand_name"`
		Tone             string   `json:"tone"`
		ApprovedPhrases  []string `json:"approved_phrases"`
		ForbiddenWords   []string `json:"forbidden_words"`
		Values           []string `json:"values"`
		MissionStatement string   `json:"mission_statement"`
		Evidence         []string `json:"evidence"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, &ImportError{Message: "failed to parse brand voice draft", Cause: err}
	}

	return &types.BrandVoiceDraft{
		BrandVoice: types.BrandVoice{
			BrandName:        wire.BrandName,
			Tone:             wire.Tone,
			ApprovedPhrases:  wire.ApprovedPhrases,
			ForbiddenWords:   wire.ForbiddenWords,
			Values:           wire.Values,
			MissionStatement: wire.MissionStatement,
		},
		SourceURL: url,
		Evidence:  wire.Evidence,
	}, nil
}
