package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avery/copydesk/internal/forms"
	"github.com/avery/copydesk/internal/generation"
	"github.com/avery/copydesk/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate copy from a template without starting the server",
	Long:  "Fills a template's form from --set key=value flags, assembles the prompt, and prints the generated copy. Use --dry-run to inspect the prompt without calling the model.",
	RunE:  runGenerate,
}

var (
	generateTemplateID string
	generateSetValues  []string
	generateVoicePath  string
	generatePersona    string
	generateDryRun     bool
	generateAPIKey     string
	generateOutPath    string
)

func init() {
	generateCmd.Flags().StringVarP(&generateTemplateID, "template", "t", "", "Template ID (required)")
	generateCmd.Flags().StringArrayVar(&generateSetValues, "set", nil, "Form field as key=value (repeatable)")
	generateCmd.Flags().StringVar(&generateVoicePath, "brand-voice", "", "Path to a brand voice JSON file")
	generateCmd.Flags().StringVar(&generatePersona, "persona", "", "Path to a persona JSON file")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Print the assembled prompt instead of calling the model")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateCmd.Flags().StringVarP(&generateOutPath, "out", "o", "", "Write output to a file instead of stdout")

	if err := generateCmd.MarkFlagRequired("template"); err != nil {
		panic(fmt.Sprintf("failed to mark template flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	formData, err := parseSetFlags(generateSetValues)
	if err != nil {
		return err
	}

	req := &generation.Request{
		TemplateID: generateTemplateID,
		FormData:   formData,
	}

	if generateVoicePath != "" {
		voice := &types.BrandVoice{}
		if err := readJSONFile(generateVoicePath, voice); err != nil {
			return fmt.Errorf("failed to read brand voice file: %w", err)
		}
		req.BrandVoice = voice
		req.ApplyBrandVoice = true
	}
	if generatePersona != "" {
		persona := &types.Persona{}
		if err := readJSONFile(generatePersona, persona); err != nil {
			return fmt.Errorf("failed to read persona file: %w", err)
		}
		req.Persona = persona
	}

	if generateDryRun {
		prompt, err := generation.AssemblePreview(req)
		if err != nil {
			return err
		}
		return writeOutput(prompt)
	}

	apiKey := generateAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key required: set --api-key flag or GEMINI_API_KEY environment variable")
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	result, err := generation.NewService(client).Generate(ctx, req)
	if err != nil {
		return err
	}

	return writeOutput(result.GeneratedCopy)
}

// parseSetFlags turns repeated --set key=value flags into form data.
func parseSetFlags(values []string) (forms.FormData, error) {
	data := make(forms.FormData, len(values))
	for _, kv := range values {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --set value %q: expected key=value", kv)
		}
		data[key] = value
	}
	return data, nil
}

func readJSONFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func writeOutput(text string) error {
	return writeOutputTo(generateOutPath, text)
}
