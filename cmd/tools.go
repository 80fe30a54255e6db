package main

import (
	"context"
	"fmt"

	"github.com/jekabolt/grbpwr-deals/app"
	"github.com/jekabolt/grbpwr-deals/internal/apisrv/auth"
	"github.com/jekabolt/grbpwr-deals/internal/usagereset"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Print an admin token signed with the configured secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s, err := auth.New(&cfg.Auth)
			if err != nil {
				return err
			}
			tok, err := s.IssueToken(tokenSubject)
			if err != nil {
				return fmt.Errorf("can't issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	resetUsageCmd = &cobra.Command{
		Use:   "reset-usage",
		Short: "Reset coupon usage counters once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			ctx := context.Background()
			db, err := app.OpenRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			job, err := usagereset.NewJob(&cfg.UsageReset, db.Coupons(), nil)
			if err != nil {
				return err
			}
			res, err := job.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s reset %d coupons\n", res.RunID, res.Affected)
			return nil
		},
	}
)

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "token subject recorded in request logs")
}
