package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session operations",
	}

	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionMoveCmd())

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a session's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session
			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionMoveCmd() *cobra.Command {
	var (
		connID string
		row    int
		col    int
	)

	cmd := &cobra.Command{
		Use:   "move <session-id>",
		Short: "Submit a move in a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"connection_id": connID,
				"row":           row,
				"col":           col,
			}

			var result MoveResult
			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/moves", args[0]), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&connID, "connection", "", "Connection id")
	cmd.Flags().IntVar(&row, "row", 0, "Board row")
	cmd.Flags().IntVar(&col, "col", 0, "Board column")
	_ = cmd.MarkFlagRequired("connection")
	_ = cmd.MarkFlagRequired("row")
	_ = cmd.MarkFlagRequired("col")

	return cmd
}
