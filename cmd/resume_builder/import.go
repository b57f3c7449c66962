package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/transfer"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a resume JSON file",
	Long:  "Replaces the whole resume with the contents of an exported JSON file and saves it. Invalid files leave the resume unchanged.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close() //nolint:errcheck

	importer := transfer.NewImporter(sess.store, sess.service, sess.logger)
	doc, err := importer.Import(cmd.Context(), f)
	if errors.Is(err, transfer.ErrNotPersisted) {
		return fmt.Errorf("imported %s but could not save it: %w", args[0], err)
	}
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintStatus("imported %s", args[0])
	printer.PrintDocument(doc)
	return nil
}
