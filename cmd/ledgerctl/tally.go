package main

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tallyCmd)
}

var tallyCmd = &cobra.Command{
	Use:   "tally",
	Short: "Print candidates, vote counts and the voter total",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			t, err := s.admin.CurrentTally(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, t)
		})
	},
}
