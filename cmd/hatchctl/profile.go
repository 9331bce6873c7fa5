package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your profile and assigned seeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			p, err := c.Profile(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			id, _ := p.UserID()
			fmt.Fprintf(out, "Name:   %s\n", displayName(p.Name))
			fmt.Fprintf(out, "ID:     %s\n", id)
			fmt.Fprintf(out, "Role:   %s\n", p.Role)
			fmt.Fprintf(out, "Seeds:  %d\n", p.Seeds())
			if p.Location != nil {
				fmt.Fprintf(out, "Site:   %.5f, %.5f\n", p.Location.Latitude, p.Location.Longitude)
			}
			if p.Seeds() == 0 {
				fmt.Fprintln(out, "Uploads stay locked until an admin assigns seeds.")
			}
			return nil
		},
	}
}
