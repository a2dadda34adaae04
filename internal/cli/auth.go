package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/bucketlist/internal/ui"
)

func newAuthCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the signed-in user",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "login <token>",
		Short: "Store an access token from the identity provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.auth.Login(args[0])
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "signed in as "+id.Username)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "signed out")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.auth.Current()
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s (%s)", id.Username, id.Source)
			if id.ExpiresAt != nil {
				line += ", expires " + id.ExpiresAt.Format(time.RFC3339)
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	})

	return cmd
}
