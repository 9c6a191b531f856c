package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd(a *app) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render every catalog asset and write it to the output directory",
		Long: `Renders each asset in the catalog, writes it as a mono 16-bit WAV file and
writes manifest.json with the UI event map. With --check nothing is written;
the command fails if any file on disk differs from a fresh render.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, check)
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "verify files on disk instead of writing them")
	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, check bool) error {
	rn, err := a.newRunner()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if check {
		mismatches, err := rn.Check(ctx)
		if err != nil {
			return err
		}
		for _, m := range mismatches {
			fmt.Fprintf(out, "%s: %s\n", m.Name, m.Reason)
		}
		if len(mismatches) > 0 {
			return fmt.Errorf("%d of %d assets out of date in %s", len(mismatches), len(rn.Catalog().Assets), a.cfg.OutputDir)
		}
		fmt.Fprintf(out, "%d assets up to date in %s\n", len(rn.Catalog().Assets), a.cfg.OutputDir)
		return nil
	}

	a.logger.Info("generating",
		zap.String("outputDir", a.cfg.OutputDir),
		zap.Int("assets", len(rn.Catalog().Assets)),
		zap.Int("sampleRate", a.cfg.SampleRate),
		zap.Int("workers", a.cfg.Workers),
	)
	results, err := rn.Run(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		fmt.Fprintf(out, "Wrote %s (%.3fs)\n", res.Path, res.Seconds)
	}
	return nil
}
