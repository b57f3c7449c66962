package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	renderOutputFile string
	renderFragment   bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the resume to HTML",
	Long:  "Renders the saved resume as a standalone HTML page, or as the bare resume fragment with --fragment.",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output HTML file (default stdout)")
	renderCmd.Flags().BoolVar(&renderFragment, "fragment", false, "Render only the resume fragment without the page wrapper")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
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
	var html string
	if renderFragment {
		html, err = renderer.Render(doc)
	} else {
		html, err = renderer.RenderPage(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	return writeOutput(cmd, renderOutputFile, []byte(html))
}
