package cli

import (
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Long: `Create a new game on the server.

The server allows one open game per client address; creating a second
game before the first closes will fail.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CreateGameResult

			if err := client.Post("/api/v1/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
