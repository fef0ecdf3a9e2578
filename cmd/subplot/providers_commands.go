package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subplot/internal/providers"
)

func newProvidersCommand(ctx *commandContext) *cobra.Command {
	providersCmd := &cobra.Command{
		Use:   "providers",
		Short: "Inspect and manage subtitle provider throttling",
	}

	providersCmd.AddCommand(newProvidersListCommand(ctx))
	providersCmd.AddCommand(newProvidersResetCommand(ctx))

	return providersCmd
}

func newProvidersListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show configured providers and any active suspensions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			ledger := providers.OpenLedger(cfg, logger)
			throttled := make(map[string]providers.Entry)
			for _, entry := range ledger.Throttled() {
				throttled[entry.Provider] = entry
			}

			now := time.Now()
			rows := make([][]string, 0, len(cfg.Providers.Enabled))
			for _, name := range cfg.Providers.Enabled {
				status := "enabled"
				detail := ""
				if entry, ok := throttled[name]; ok {
					status = "throttled"
					detail = fmt.Sprintf("%s (%s left)", entry.Kind, entry.Remaining(now))
				}
				rows = append(rows, []string{name, status, detail})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No providers configured")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Provider", "Status", "Detail"}, rows))
			return nil
		},
	}
}

func newProvidersResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all provider suspensions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			ledger := providers.OpenLedger(cfg, logger)
			cleared := ledger.Throttled()
			ledger.Reset()

			out := cmd.OutOrStdout()
			if len(cleared) == 0 {
				fmt.Fprintln(out, "No suspensions to clear")
				return nil
			}
			names := make([]string, 0, len(cleared))
			for _, entry := range cleared {
				names = append(names, entry.Provider)
			}
			fmt.Fprintf(out, "Cleared suspensions for %s\n", strings.Join(names, ", "))
			return nil
		},
	}
}
