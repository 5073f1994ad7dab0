package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newGridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "Show the current grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Grid

			if err := client.Get("/api/v1/grid", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the world configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result WorldConfig

			if err := client.Get("/api/v1/config", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin commands",
	}

	cmd.AddCommand(newAdminSetIntervalCmd())

	return cmd
}

func newAdminSetIntervalCmd() *cobra.Command {
	var adminToken string

	cmd := &cobra.Command{
		Use:   "set-interval <ms>",
		Short: "Change the world tick interval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid interval %q: %w", args[0], err)
			}

			if adminToken == "" {
				return fmt.Errorf("--admin-token is required")
			}
			client.SetAdminToken(adminToken)

			req := map[string]uint32{"tick_interval_ms": uint32(ms)}
			var result WorldConfig

			if err := client.Put("/api/v1/config/tick-interval", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&adminToken, "admin-token", os.Getenv("GOST_ADMIN_TOKEN"), "Admin token (env: GOST_ADMIN_TOKEN)")

	return cmd
}
