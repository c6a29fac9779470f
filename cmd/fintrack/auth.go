package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vijaysanthoshp/fintrack/internal/api"
	"github.com/vijaysanthoshp/fintrack/internal/cli"
	"github.com/vijaysanthoshp/fintrack/internal/model"
	"golang.org/x/term"
)

func loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username-or-email>",
		Short: "Log in to the Finance Tracker backend",
		Long:  `Authenticate with a username or email address. The session is stored locally so later commands stay logged in.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			store, sess, err := openSession()
			if err != nil {
				return err
			}

			client := newClient(sess)
			user, err := client.Login(ctx, api.Credentials{
				UsernameOrEmail: args[0],
				Password:        password,
			})
			if err != nil {
				return err
			}

			if err := store.Save(sess); err != nil {
				return fmt.Errorf("logged in but failed to persist session: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s", user.DisplayName())))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")

	return cmd
}

func registerCmd() *cobra.Command {
	var (
		email     string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a new account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if email == "" {
				return fmt.Errorf("--email is required")
			}

			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			confirmed, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirmed {
				return fmt.Errorf("passwords do not match")
			}

			store, sess, err := openSession()
			if err != nil {
				return err
			}

			client := newClient(sess)
			user, err := client.Register(ctx, api.Registration{
				Username:  args[0],
				Email:     email,
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
			})
			if err != nil {
				return err
			}

			if err := store.Save(sess); err != nil {
				return fmt.Errorf("registered but failed to persist session: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Welcome, %s! You are now logged in.", user.DisplayName())))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, sess, err := openSession()
			if err != nil {
				return err
			}

			if sess.Authenticated() {
				// Best effort: the token is discarded locally even when
				// the backend is unreachable.
				if err := newClient(sess).Logout(ctx); err != nil {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("Backend logout failed: %v", err)))
				}
			}

			if err := store.Clear(); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, store, err := newAuthedClient()
			if err != nil {
				return err
			}

			var user model.User
			if refresh {
				user, err = client.Refresh(ctx)
				if err != nil {
					return err
				}
				if err := store.Save(client.Session()); err != nil {
					return fmt.Errorf("refreshed but failed to persist session: %w", err)
				}
			} else {
				user, err = client.Verify(ctx)
				if err != nil {
					return err
				}
			}

			fmt.Printf("%s %s\n", cli.BoldStyle.Render(user.DisplayName()), cli.SubtleStyle.Render("<"+user.Email+">"))
			if user.Username != "" && user.Username != user.DisplayName() {
				fmt.Printf("  Username: %s\n", user.Username)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Exchange the current token for a fresh one")

	return cmd
}

// promptPassword reads a password without echo, falling back to plain line
// input when stdin is not a terminal (tests, pipes).
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
