package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func signInCmd(e *env) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with any credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := e.app.Session.SignIn(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("sign in: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s <%s>\n", u.Name, u.Email)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "ignored")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func signUpCmd(e *env) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create the local profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := e.app.Session.SignUp(cmd.Context(), email, password, name)
			if err != nil {
				return fmt.Errorf("sign up: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "signed up as %s <%s>\n", u.Name, u.Email)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "ignored")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func signOutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Remove the local profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.app.Session.SignOut(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return err
		},
	}
}

func whoAmICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, ok := e.app.Session.Current()
			if !ok {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> currency=%s\n", u.Name, u.Email, u.Currency)
			return err
		},
	}
}
