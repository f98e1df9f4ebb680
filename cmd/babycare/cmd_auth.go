package main

import (
	"fmt"
	"strings"

	"babysafety/internal/client/api"
	"babysafety/internal/client/guard"
	"babysafety/internal/client/session"

	"github.com/spf13/cobra"
)

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.guarded(at(guard.Login), func(cmd *cobra.Command, args []string) error {
		res, err := a.client.Login(cmd.Context(), strings.TrimSpace(email), password)
		if err != nil {
			return err
		}
		if err := a.session.Login(session.User{
			ID:    res.ID.String(),
			Name:  res.Username,
			Email: res.Email,
			Token: res.Token,
		}); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Welcome, %s.\n", res.Username)
		return nil
	})
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var in api.SignupRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.guarded(at(guard.Register), func(cmd *cobra.Command, args []string) error {
		if _, err := a.client.Signup(cmd.Context(), in); err != nil {
			return err
		}
		fmt.Fprintln(a.out, `Account created. Run "babycare login" to continue.`)
		return nil
	})
	f := cmd.Flags()
	f.StringVar(&in.Username, "username", "", "3-20 characters")
	f.StringVar(&in.Email, "email", "", "email address")
	f.StringVar(&in.Password, "password", "", "6-40 characters")
	f.StringVar(&in.MobileNumber, "mobile", "", "10-15 digits")
	for _, name := range []string{"username", "email", "password", "mobile"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.session.IsAuthenticated() {
				fmt.Fprintln(a.out, "Not logged in.")
				return nil
			}
			if err := a.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}
