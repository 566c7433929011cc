package main

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addCandidateCmd)
}

var addCandidateCmd = &cobra.Command{
	Use:   "add-candidate NAME",
	Short: "Register a candidate with zero votes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			c, err := s.admin.AddCandidate(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, c)
		})
	},
}
