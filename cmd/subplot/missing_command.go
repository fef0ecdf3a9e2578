package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subplot/internal/store"
)

func newMissingCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "missing",
		Short: "List videos that still need subtitles",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			videos, err := st.ListVideos(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(videos))
			for _, video := range videos {
				if len(video.Missing) == 0 {
					continue
				}
				if kindFlag != "" && string(video.Kind) != kindFlag {
					continue
				}
				rows = append(rows, []string{
					strconv.FormatInt(video.ID, 10),
					string(video.Kind),
					videoLabel(video),
					strings.Join(video.Missing, ", "),
				})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No videos are missing subtitles")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Kind", "Title", "Missing"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "", "Restrict to one kind (movie or episode)")
	return cmd
}

func videoLabel(video *store.Video) string {
	if video.Kind == store.KindEpisode && video.Series != "" {
		return fmt.Sprintf("%s S%02dE%02d", video.Series, video.Season, video.Episode)
	}
	if video.Year > 0 {
		return fmt.Sprintf("%s (%d)", video.Title, video.Year)
	}
	return video.Title
}
