package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"subplot/internal/notifications"
	"subplot/internal/workflow"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var noCache bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Re-index subtitles for every video in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			bus := notifications.NewBus(cfg, logger)
			runner := workflow.NewRunner(cfg, st, bus, logger)

			out := cmd.OutOrStdout()
			var progress workflow.Progress
			if !quiet {
				progress = func(done, total int, path string) {
					fmt.Fprintf(out, "[%d/%d] %s\n", done, total, path)
				}
			}

			started := time.Now()
			stats, err := runner.SweepLibrary(runCtx, !noCache, progress)
			if err != nil {
				return fmt.Errorf("sweep library: %w", err)
			}

			fmt.Fprintf(out, "Scanned %d videos (%d failed) in %s\n",
				stats.Videos, stats.Failed, humanize.RelTime(started, time.Now(), "", ""))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the probe cache and re-inspect every file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-file progress output")
	return cmd
}
