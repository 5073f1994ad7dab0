package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Connect to the world as a player",
		Long: `Connect registers your identity with the server and returns your player
along with the current grid.

If no identity is configured, a fresh random one is generated and saved to
the identity file so later commands act as the same player.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.EnsureIdentity(); err != nil {
				return fmt.Errorf("failed to set up identity: %w", err)
			}
			client.SetIdentity(cfg.Identity)

			var result ConnectResult
			if err := client.Post("/api/v1/connect", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your player info",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get("/api/v1/players/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List all players in the world",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <hex>",
		Short: "Change your player color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"color": args[0]}
			var result Player

			if err := client.Put("/api/v1/players/me/color", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
