package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/geo"
)

func newDistanceCmd(a *app) *cobra.Command {
	var lat, lon float64
	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Show how far each image was taken from your registered site",
		RunE: func(cmd *cobra.Command, args []string) error {
			latSet, lonSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon")
			if latSet != lonSet {
				return errors.New("--lat and --lon must be given together")
			}

			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			site := s.profile.Location
			if site == nil {
				site = s.hatchery.Site
			}
			if site == nil {
				return errors.New("no site registered on your profile")
			}
			origin := geo.FromDomain(*site)
			out := cmd.OutOrStdout()

			if latSet {
				here := geo.Point{Latitude: lat, Longitude: lon}
				if err := here.Validate(); err != nil {
					return err
				}
				fmt.Fprintf(out, "You are %.2f km from your site.\n", geo.Haversine(here, origin))
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SLOT\tUPLOADED\tDISTANCE")
			for i, img := range s.hatchery.Images {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, img.UploadedAt.Local().Format("2 Jan 15:04"), imageDistance(origin, img))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "measure from this latitude instead")
	cmd.Flags().Float64Var(&lon, "lon", 0, "measure from this longitude instead")
	return cmd
}

func imageDistance(origin geo.Point, img domain.HatcheryImage) string {
	if img.Location == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f km", geo.Haversine(origin, geo.FromDomain(*img.Location)))
}
