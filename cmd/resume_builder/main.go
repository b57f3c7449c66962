// Package main provides the entry point for the resume builder CLI and live preview server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	verbose     bool
	storageFlag string
	dataDirFlag string
)

var rootCmd = &cobra.Command{
	Use:          "resume_builder",
	Short:        "Resume builder with live HTML preview",
	Long:         "Resume builder edits a single resume document, renders it to HTML with a live preview, and exports it as JSON or PDF.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "Storage backend: file, memory, redis or postgres")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory for the file storage backend")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
