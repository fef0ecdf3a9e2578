package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subplot/internal/notifications"
	"subplot/internal/workflow"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "index <video-id>",
		Short: "Re-index subtitles for one video and recompute its missing list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid video id %q", args[0])
			}

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

			bus := notifications.NewBus(cfg, logger)
			runner := workflow.NewRunner(cfg, st, bus, logger)
			if err := runner.IndexVideo(cmd.Context(), id, !noCache); err != nil {
				return err
			}

			video, err := st.GetVideo(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Indexed %s\n", video.Path)
			rows := make([][]string, 0, len(video.Subtitles))
			for _, record := range video.Subtitles {
				location := "embedded"
				if !record.Embedded() {
					location = record.Path
				}
				rows = append(rows, []string{record.Tag(), location})
			}
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable([]string{"Language", "Location"}, rows))
			}
			if len(video.Missing) > 0 {
				fmt.Fprintf(out, "Missing: %s\n", strings.Join(video.Missing, ", "))
			} else {
				fmt.Fprintln(out, "Nothing missing")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the probe cache and re-inspect the file")
	return cmd
}
