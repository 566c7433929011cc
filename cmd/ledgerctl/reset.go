package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"vote-ledger/internal/domain/admin"
)

var resetConfirmed bool

func init() {
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "confirm the reset")
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every candidate and forget every voter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirmed {
			return errors.New("reset is destructive; pass --yes to proceed")
		}
		return withSession(cmd, func(ctx context.Context, s *session) error {
			snap, err := s.admin.ResetAll(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, admin.TallyOf(snap))
		})
	},
}
