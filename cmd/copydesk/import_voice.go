package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avery/copydesk/internal/llm"
	"github.com/avery/copydesk/internal/voice"
)

var importVoiceCmd = &cobra.Command{
	Use:   "import-voice",
	Short: "Extract a draft brand voice from a website",
	Long:  "Fetches a website, extracts its main text, and asks the model to propose a brand voice. The draft is printed as JSON for review.",
	RunE:  runImportVoice,
}

var (
	importVoiceURL     string
	importVoiceBrowser bool
	importVoiceAPIKey  string
	importVoiceOutPath string
)

func init() {
	importVoiceCmd.Flags().StringVarP(&importVoiceURL, "url", "u", "", "Website URL (required)")
	importVoiceCmd.Flags().BoolVar(&importVoiceBrowser, "use-browser", false, "Render the page with a headless browser")
	importVoiceCmd.Flags().StringVar(&importVoiceAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	importVoiceCmd.Flags().StringVarP(&importVoiceOutPath, "out", "o", "", "Write the draft JSON to a file instead of stdout")

	if err := importVoiceCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(importVoiceCmd)
}

func runImportVoice(_ *cobra.Command, _ []string) error {
	apiKey := importVoiceAPIKey
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

	draft, err := voice.NewImporter(client).FromURL(ctx, importVoiceURL, &voice.ImportOptions{
		UseBrowser: importVoiceBrowser,
	})
	if err != nil {
		return fmt.Errorf("failed to import brand voice: %w", err)
	}

	draftJSON, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft to JSON: %w", err)
	}

	return writeOutputTo(importVoiceOutPath, string(draftJSON))
}

// newLLMClient builds the default Gemini-backed client shared by the one-shot
// subcommands.
func newLLMClient(ctx context.Context, apiKey string) (llm.Client, error) {
	return llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
}

func writeOutputTo(path, text string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", path, err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Wrote %s\n", path)
		return nil
	}
	_, _ = fmt.Fprintln(os.Stdout, text)
	return nil
}
