package main

import (
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary of the saved resume",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the full document as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	doc := sess.store.State()
	if showJSON {
		data, err := types.MarshalDocumentIndent(doc)
		if err != nil {
			return err
		}
		return writeOutput(cmd, "", append(data, '\n'))
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintDocument(doc)
	return nil
}
