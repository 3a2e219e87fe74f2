package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/founderdash/dashboard/handlers"
	"github.com/founderdash/dashboard/internal/app"
	"github.com/founderdash/dashboard/internal/config"
	"github.com/founderdash/dashboard/internal/tokens"
	"github.com/spf13/cobra"
)

// SetupCommands builds the command tree over the opened backends.
func SetupCommands(a *app.App, cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "dashctl",
		Short:        "Administer the founder dashboard",
		SilenceUsage: true,
	}

	// create a password account
	var name, email, password string
	createUserCmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a password account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.Users.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s <%s> id=%s\n", u.Name, u.Email, u.ID)
			return nil
		},
	}
	createUserCmd.Flags().StringVar(&name, "name", "", "display name")
	createUserCmd.Flags().StringVar(&email, "email", "", "login email")
	createUserCmd.Flags().StringVar(&password, "password", "", "login password")
	_ = createUserCmd.MarkFlagRequired("name")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")

	// start a session, e.g. for scripted API access
	var ttl time.Duration
	var bearer bool
	createSessionCmd := &cobra.Command{
		Use:   "create-session",
		Short: "Log in and print a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.Users.Authenticate(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			sess, err := a.Sessions.Create(cmd.Context(), u.ID, ttl)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "session %s expires %s\n", sess.Token, sess.ExpiresAt.Format(time.RFC3339))
			if bearer {
				at, err := tokens.GenerateAccessToken(cfg, u.Identity(), sess.Handle, cfg.JWT.AccessTokenTTL)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "bearer %s\n", at)
			}
			return nil
		},
	}
	createSessionCmd.Flags().StringVar(&email, "email", "", "login email")
	createSessionCmd.Flags().StringVar(&password, "password", "", "login password")
	createSessionCmd.Flags().DurationVar(&ttl, "ttl", cfg.Session.TTL, "session lifetime")
	createSessionCmd.Flags().BoolVar(&bearer, "bearer", false, "also print a bearer access token")
	_ = createSessionCmd.MarkFlagRequired("email")
	_ = createSessionCmd.MarkFlagRequired("password")

	// print every summary of one account
	summaryCmd := &cobra.Command{
		Use:   "summary [user-id]",
		Short: "Print the dashboard overview of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, owner := cmd.Context(), args[0]
			var ov handlers.Overview
			var err error
			if ov.CapTable, err = a.CapTable.Summary(ctx, owner); err != nil {
				return err
			}
			if ov.BurnRate, err = a.BurnRate.Summary(ctx, owner); err != nil {
				return err
			}
			if ov.Documents, err = a.Documents.Summary(ctx, owner); err != nil {
				return err
			}
			if ov.Roadmap, err = a.Roadmap.Summary(ctx, owner); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(ov)
		},
	}

	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(createSessionCmd)
	rootCmd.AddCommand(summaryCmd)

	return rootCmd
}
