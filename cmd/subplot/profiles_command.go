package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subplot/internal/profile"
)

func newProfilesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured language profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cfg.Languages.Profiles) == 0 {
				fmt.Fprintln(out, "No language profiles configured")
				return nil
			}

			rows := make([][]string, 0, len(cfg.Languages.Profiles))
			for _, raw := range cfg.Languages.Profiles {
				p := profile.FromConfig(raw)
				items := make([]string, 0, len(p.Items))
				for _, item := range p.Items {
					tag := item.Selector.Tag()
					switch {
					case item.AudioExclude:
						tag += " (audio-exclude)"
					case item.AudioOnlyInclude:
						tag += " (audio-only)"
					}
					items = append(items, tag)
				}
				cutoff := ""
				if p.Cutoff != nil {
					cutoff = p.Cutoff.Tag()
				}
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10),
					p.Name,
					strings.Join(items, ", "),
					cutoff,
				})
			}

			fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Languages", "Cutoff"}, rows))
			return nil
		},
	}
}
