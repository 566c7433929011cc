package main

import (
	"context"

	"github.com/spf13/cobra"

	"vote-ledger/internal/domain/admin"
)

func init() {
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(hasVotedCmd)
}

var voteCmd = &cobra.Command{
	Use:   "vote VOTER_ID CANDIDATE_ID",
	Short: "Cast one vote and print the resulting tally",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			snap, err := s.ledger.CastVote(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd, admin.TallyOf(snap))
		})
	},
}

var hasVotedCmd = &cobra.Command{
	Use:   "has-voted VOTER_ID",
	Short: "Report whether a voter has already voted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			voted, err := s.ledger.HasVoted(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"voterId": args[0], "hasVoted": voted})
		})
	},
}
