package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/presets"
	"github.com/spf13/cobra"
)

var presetsApplyYes bool

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List and apply profession presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetsList,
}

var presetsApplyCmd = &cobra.Command{
	Use:   "apply <key>",
	Short: "Apply a preset to the resume",
	Long:  "Loads a profession preset. Presets with sample data replace the whole resume; others merge their skills and template. Overwriting existing data needs --yes.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsApply,
}

func init() {
	presetsApplyCmd.Flags().BoolVarP(&presetsApplyYes, "yes", "y", false, "Overwrite existing resume data without asking")
	presetsCmd.AddCommand(presetsListCmd, presetsApplyCmd)
	rootCmd.AddCommand(presetsCmd)
}

func runPresetsList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess := &session{cfg: cfg}
	catalog, err := sess.catalog()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTITLE\tTEMPLATE\tSKILLS\tSAMPLE") //nolint:errcheck
	for _, p := range catalog.List() {
		sample := "no"
		if p.SampleData != nil {
			sample = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", p.Key, p.Title, p.DefaultTemplate, len(p.Skills), sample) //nolint:errcheck
	}
	return tw.Flush()
}

func runPresetsApply(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	catalog, err := sess.catalog()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}
	p, ok := catalog.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown preset %q (see 'presets list')", args[0])
	}

	confirm := presets.Never
	if presetsApplyYes {
		confirm = presets.Always
	}
	res, err := presets.Apply(sess.store, p, confirm)
	if errors.Is(err, presets.ErrNotConfirmed) {
		return fmt.Errorf("%w; rerun with --yes to overwrite", err)
	}
	if err != nil {
		return err
	}
	if !sess.service.Save(cmd.Context()) {
		return fmt.Errorf("preset applied but the resume could not be saved")
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintStatus("applied preset %s", p.Key)
	if res.JobTitlePlaceholder != "" {
		printer.PrintStatus("suggested job title: %s", res.JobTitlePlaceholder)
	}
	if res.SummaryPlaceholder != "" {
		printer.PrintStatus("suggested summary: %s", res.SummaryPlaceholder)
	}
	return nil
}
