package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access token after checking it against the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("--token is required")
			}

			p, err := a.newClient(a.v.GetString(keyAPIURL), token).Profile(cmd.Context())
			if err != nil {
				return err
			}

			a.v.Set(keyToken, token)
			if err := a.saveConfig(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s).\n", displayName(p.Name), p.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "access token issued by an admin")
	return cmd
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "N/A"
	}
	return name
}
