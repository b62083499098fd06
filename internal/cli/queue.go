package cli

import (
	"github.com/spf13/cobra"
)

func newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Matchmaking queue operations",
	}

	cmd.AddCommand(newQueueJoinCmd())
	cmd.AddCommand(newQueueLeaveCmd())

	return cmd
}

func newQueueJoinCmd() *cobra.Command {
	var (
		username string
		skill    int
		region   string
		connID   string
	)

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the matchmaking queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"username":      username,
				"skill_level":   skill,
				"region":        region,
				"connection_id": connID,
			}

			var result QueueJoinResult
			if err := client.Post("/api/v1/queue/join", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Player username")
	cmd.Flags().IntVar(&skill, "skill", 0, "Skill level")
	cmd.Flags().StringVar(&region, "region", "", "Matchmaking region")
	cmd.Flags().StringVar(&connID, "connection", "", "Connection id (matches the events stream)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("skill")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("connection")

	return cmd
}

func newQueueLeaveCmd() *cobra.Command {
	var connID string

	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Leave the matchmaking queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"connection_id": connID}

			if err := client.Post("/api/v1/queue/leave", body, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left the queue")
			return nil
		},
	}

	cmd.Flags().StringVar(&connID, "connection", "", "Connection id")
	_ = cmd.MarkFlagRequired("connection")

	return cmd
}
