// Package main provides the entry point for the Copydesk HTTP API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "copydesk",
	Short: "Copydesk copywriting workspace",
	Long:  "Copydesk generates marketing copy from structured templates, scores it against brand voices and personas, and serves the workspace REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
