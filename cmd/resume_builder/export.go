package main

import (
	"time"

	"github.com/jonathan/resume-builder/internal/transfer"
	"github.com/spf13/cobra"
)

var (
	exportOutputFile string
	exportStdout     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume as a JSON file",
	Long:  "Writes the full resume document as indented JSON, named resume_<name>_<date>.json unless --out is given.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutputFile, "out", "o", "", "Path to output JSON file")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write the JSON to stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	doc := sess.store.State()
	data, err := transfer.Export(doc)
	if err != nil {
		return err
	}

	if exportStdout {
		return writeOutput(cmd, "", append(data, '\n'))
	}
	out := exportOutputFile
	if out == "" {
		out = transfer.Filename(doc, time.Now())
	}
	return writeOutput(cmd, out, data)
}
