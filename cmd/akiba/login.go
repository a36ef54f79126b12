package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"akiba/internal/validation"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [email-or-phone]",
		Short: "Sign in and store the session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, sessions, err := bootstrap()
			if err != nil {
				return err
			}
			defer sessions.Close()

			var identifier string
			if len(args) == 1 {
				identifier = args[0]
			} else {
				fmt.Print("Email or phone: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading identifier: %w", err)
				}
				identifier = strings.TrimSpace(line)
			}

			normalized, kind, err := validation.NormalizeIdentifier(identifier)
			if err != nil {
				return err
			}

			fmt.Print("Password: ")
			password, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			if len(password) == 0 {
				return fmt.Errorf("password must not be empty")
			}

			sess, err := client.Login(context.Background(), normalized, string(password))
			if err != nil {
				return fmt.Errorf("sign in failed: %w", err)
			}

			if err := sessions.Save(sess); err != nil {
				return fmt.Errorf("storing session: %w", err)
			}

			fmt.Printf("Signed in as %s (%s %s)\n", sess.User.Name, kind, normalized)
			return nil
		},
	}
}
