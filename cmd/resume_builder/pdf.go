package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/pdf"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/transfer"
	"github.com/spf13/cobra"
)

var pdfOutputFile string

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Print the resume to PDF",
	Long:  "Renders the resume page and prints it to PDF with headless Chrome, using the document's page size.",
	RunE:  runPDF,
}

func init() {
	pdfCmd.Flags().StringVarP(&pdfOutputFile, "out", "o", "", "Path to output PDF file (default resume_<name>_<date>.pdf)")
	rootCmd.AddCommand(pdfCmd)
}

func runPDF(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	renderer, err := rendering.NewRenderer()
	if err != nil {
		return err
	}

	doc := sess.store.State()
	page, err := renderer.RenderPage(doc)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	printer := pdf.NewPrinter(
		pdf.WithChromePath(sess.cfg.ChromePath),
		pdf.WithTimeout(sess.cfg.PDFTimeout()),
		pdf.WithLogger(sess.logger),
	)
	data, err := printer.Print(cmd.Context(), page, doc.Meta.PageSize)
	if err != nil {
		return err
	}

	out := pdfOutputFile
	if out == "" {
		out = strings.TrimSuffix(transfer.Filename(doc, time.Now()), ".json") + ".pdf"
	}
	return writeOutput(cmd, out, data)
}
