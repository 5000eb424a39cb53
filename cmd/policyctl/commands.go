package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"farm-policy/internal/app"
	"farm-policy/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			n, err := c.Migrate(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the policy categories and the reference policies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			if err := c.Seed(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed complete")
			return nil
		})
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import every public data set into the catalog as inactive policies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			report, err := c.PublicData.Sync(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		})
	},
}

var (
	matchUser   string
	matchSearch string
	matchLimit  int
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Print the recommended policies for a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		uid, err := uuid.Parse(strings.TrimSpace(matchUser))
		if err != nil {
			return fmt.Errorf("--user must be a uuid: %w", err)
		}
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			out, err := c.Matches.GetMatches(ctx, uid, policy.Filter{Search: matchSearch}, matchLimit)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		})
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchUser, "user", "", "user id whose profile is matched")
	matchCmd.Flags().StringVar(&matchSearch, "search", "", "only show policies containing this text")
	matchCmd.Flags().IntVar(&matchLimit, "limit", 0, "maximum number of matches (0 for all)")
	_ = matchCmd.MarkFlagRequired("user")
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
