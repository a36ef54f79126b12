package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"akiba/internal/session"
)

func newWhoamiCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in member",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, sessions, err := bootstrap()
			if err != nil {
				return err
			}
			defer sessions.Close()

			sess, err := sessions.Load()
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					fmt.Println("Not signed in. Run `akiba login` first.")
					return nil
				}
				return fmt.Errorf("loading session: %w", err)
			}

			user := sess.User
			if !local {
				client.SetToken(sess.Token)
				fresh, err := client.Me(context.Background())
				if err != nil {
					return fmt.Errorf("checking session with the platform: %w", err)
				}
				user = *fresh
			}

			fmt.Printf("%s\n", user.Name)
			if user.Email != "" {
				fmt.Printf("  email:  %s\n", user.Email)
			}
			if user.Phone != "" {
				fmt.Printf("  phone:  %s\n", user.Phone)
			}
			if !user.MemberSince.IsZero() {
				fmt.Printf("  member since: %s\n", user.MemberSince.Format("Jan 2006"))
			}
			fmt.Printf("  session expires: %s\n", sess.ExpiresAt.Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Report the stored session without contacting the platform")

	return cmd
}
