package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved resume",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.store.ResetState()
	if !sess.service.Clear(cmd.Context()) {
		return fmt.Errorf("failed to clear saved resume")
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintStatus("cleared saved resume")
	return nil
}
