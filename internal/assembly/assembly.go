// Package assembly builds generation prompts from a template, resolved form
// data, and optional brand-voice and persona directives.
package assembly

import (
	"fmt"
	"strings"

	"github.com/avery/copydesk/internal/catalog"
	"github.com/avery/copydesk/internal/forms"
	"github.com/avery/copydesk/internal/types"
)

// Placeholder tokens for the optional directive blocks.
const (
	brandVoiceToken = "{brandVoiceInstructions}"
	personaToken    = "{personaInstructions}"
)

// Assemble substitutes resolved form values and optional directive blocks
// into the template's prompt string. Every {fieldId} occurrence is replaced
// globally; values are inserted verbatim with no escaping, since the result
// is consumed by a remote model rather than executed. Output is deterministic
// for a fixed input.
func Assemble(tpl *catalog.Template, resolved forms.FormData, voice *types.BrandVoice, persona *types.Persona) string {
	prompt := tpl.Prompt

	for i := range tpl.Fields {
		f := &tpl.Fields[i]
		prompt = strings.ReplaceAll(prompt, "{"+f.ID+"}", resolved[f.ID])
	}

	prompt = strings.ReplaceAll(prompt, brandVoiceToken, BrandVoiceDirectives(voice))
	prompt = strings.ReplaceAll(prompt, personaToken, PersonaDirectives(persona))

	return prompt
}

// BrandVoiceDirectives formats a brand voice into a prompt directive block.
// A nil voice yields the empty string.
func BrandVoiceDirectives(voice *types.BrandVoice) string {
	if voice == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nBrand voice requirements:\n")
	fmt.Fprintf(&sb, "- Brand: %s\n", voice.BrandName)
	if voice.Tone != "" {
		fmt.Fprintf(&sb, "- Tone: %s\n", voice.Tone)
	}
	if len(voice.ApprovedPhrases) > 0 {
		fmt.Fprintf(&sb, "- Prefer these phrases where natural: %s\n", strings.Join(voice.ApprovedPhrases, "; "))
	}
	if len(voice.ForbiddenWords) > 0 {
		fmt.Fprintf(&sb, "- Never use these words: %s\n", strings.Join(voice.ForbiddenWords, ", "))
	}
	if len(voice.Values) > 0 {
		fmt.Fprintf(&sb, "- Brand values: %s\n", strings.Join(voice.Values, ", "))
	}
	if voice.MissionStatement != "" {
		fmt.Fprintf(&sb, "- Mission: %s\n", voice.MissionStatement)
	}
	return sb.String()
}

// PersonaDirectives formats a persona into a prompt directive block. A nil
// persona yields the empty string.
func PersonaDirectives(persona *types.Persona) string {
	if persona == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nAudience persona:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", persona.Name)
	if persona.Demographics != "" {
		fmt.Fprintf(&sb, "- Demographics: %s\n", persona.Demographics)
	}
	if persona.Psychographics != "" {
		fmt.Fprintf(&sb, "- Psychographics: %s\n", persona.Psychographics)
	}
	if len(persona.PainPoints) > 0 {
		fmt.Fprintf(&sb, "- Pain points: %s\n", strings.Join(persona.PainPoints, "; "))
	}
	if len(persona.LanguagePatterns) > 0 {
		fmt.Fprintf(&sb, "- Speaks in terms like: %s\n", strings.Join(persona.LanguagePatterns, "; "))
	}
	if len(persona.Goals) > 0 {
		fmt.Fprintf(&sb, "- Goals: %s\n", strings.Join(persona.Goals, "; "))
	}
	return sb.String()
}
