package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"akiba/internal/session"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, sessions, err := bootstrap()
			if err != nil {
				return err
			}
			defer sessions.Close()

			sess, err := sessions.Load()
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					fmt.Println("Not signed in.")
					return nil
				}
				return fmt.Errorf("loading session: %w", err)
			}

			// Revoke server-side first; a failure there still clears the
			// local session.
			client.SetToken(sess.Token)
			if err := client.Logout(context.Background()); err != nil {
				fmt.Printf("Warning: server-side logout failed: %v\n", err)
			}

			if err := sessions.Delete(); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}

			fmt.Println("Signed out.")
			return nil
		},
	}
}
