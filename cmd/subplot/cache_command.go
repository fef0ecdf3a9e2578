package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the ffprobe result cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached probe results",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.ClearProbeCache(cmd.Context()); err != nil {
				return fmt.Errorf("clear probe cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Probe cache cleared")
			return nil
		},
	})

	return cacheCmd
}
