package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osse101/HatcheryOps_Go/internal/client"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/slots"
)

func newHatcheryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hatchery",
		Short: "Work with your current hatchery cycle",
	}
	cmd.AddCommand(
		newHatcheryShowCmd(a),
		newHatcheryCreateCmd(a),
		newHatcheryUploadCmd(a),
		newHatcheryDeleteCmd(a),
	)
	return cmd
}

// session is the state every hatchery subcommand starts from
type session struct {
	api      *client.Client
	profile  *client.Profile
	hatchery *client.Hatchery
	tracker  *slots.Tracker
}

func (a *app) openSession(ctx context.Context) (*session, error) {
	c, err := a.client()
	if err != nil {
		return nil, err
	}
	p, err := c.Profile(ctx)
	if err != nil {
		return nil, err
	}
	userID, err := p.UserID()
	if err != nil {
		return nil, err
	}
	h, err := c.CurrentHatchery(ctx, userID)
	if err != nil {
		return nil, err
	}

	overrides, err := a.overrideStore().Load()
	if err != nil {
		return nil, err
	}
	tracker := slots.NewTracker(slots.NewRealClock(), overrides)
	tracker.Update(h.SlotInputs(), p.Seeds())

	return &session{api: c, profile: p, hatchery: h, tracker: tracker}, nil
}

func newHatcheryShowCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the slot board",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Hatchery %s  (%s to %s)\n", s.hatchery.Key(),
				s.hatchery.StartDate.Format("2 Jan"), s.hatchery.EndDate.Format("2 Jan 2006"))

			if !watch {
				renderBoard(out, s.tracker.Snapshot(), s.hatchery)
				return nil
			}

			ctx, stop := interruptible(cmd.Context())
			defer stop()
			err = s.tracker.Watch(ctx, slots.DefaultWatchInterval, func(b slots.Board) {
				fmt.Fprintf(out, "\r%s", compactBoard(b))
			})
			fmt.Fprintln(out)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "refresh countdowns every second until Ctrl-C")
	return cmd
}

func newHatcheryCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Start a hatchery cycle if none is active",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			h, err := c.CreateHatchery(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Hatchery %s runs until %s.\n", h.Key(), h.EndDate.Format("2 Jan 2006"))
			return nil
		},
	}
}

func newHatcheryUploadCmd(a *app) *cobra.Command {
	var (
		camera   bool
		lat, lon float64
	)
	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload a progress image into the next free slot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := client.SourceGallery
			var file string
			switch {
			case camera:
				source = client.SourceCamera
			case len(args) == 1:
				file = args[0]
			default:
				return errors.New("pass an image file or --camera")
			}

			var point *domain.GeoPoint
			latSet, lonSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon")
			if latSet != lonSet {
				return errors.New("--lat and --lon must be given together")
			}
			if latSet {
				point = &domain.GeoPoint{Latitude: lat, Longitude: lon}
			}

			ctx, stop := interruptible(cmd.Context())
			defer stop()

			s, err := a.openSession(ctx)
			if err != nil {
				return err
			}

			captureCmd := a.v.GetString(keyCaptureCommand)
			orch := client.NewOrchestrator(
				s.api,
				client.ConfigPermissions{
					Source:         source,
					CaptureCommand: captureCmd,
					AllowLocation:  a.v.GetBool(keyAllowLocation),
					WantsLocation:  point != nil,
				},
				client.CommandCapturer{Command: captureCmd, File: file},
				client.FixedLocator{Point: point},
				s.tracker,
				a.overrideStore(),
			)
			orch.Sync(s.hatchery, s.profile.Seeds())

			h, err := orch.Upload(ctx, s.hatchery.Key(), source)
			if errors.Is(err, client.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Capture cancelled.")
				return nil
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Uploaded to slot %d.\n", len(h.Images))
			renderBoard(out, orch.Tracker().Snapshot(), h)
			return nil
		},
	}
	cmd.Flags().BoolVar(&camera, "camera", false, "capture with the configured capture_command")
	cmd.Flags().Float64Var(&lat, "lat", 0, "capture latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "capture longitude")
	return cmd
}

func newHatcheryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot>",
		Short: "Delete the image in a slot (1-4) within a minute of upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil || slot < 1 || slot > slots.SlotCount {
				return fmt.Errorf("slot must be a number from 1 to %d", slots.SlotCount)
			}

			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			orch := client.NewOrchestrator(s.api, nil, nil, nil, s.tracker, a.overrideStore())
			orch.Sync(s.hatchery, s.profile.Seeds())

			h, err := orch.Delete(cmd.Context(), s.hatchery.Key(), slot-1)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deleted the image in slot %d.\n", slot)
			renderBoard(out, orch.Tracker().Snapshot(), h)
			return nil
		},
	}
}

func renderBoard(w io.Writer, b slots.Board, h *client.Hatchery) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tSTATE\tDETAIL")
	for _, v := range b.Slots {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", v.Index+1, stateLabel(v.State), slotDetail(v, h))
	}
	_ = tw.Flush()

	switch {
	case b.Complete:
		fmt.Fprintln(w, "All slots are filled for this cycle.")
	case b.Gated:
		fmt.Fprintln(w, domain.ErrMsgSeedsNotAssigned)
	}
}

func stateLabel(s slots.State) string {
	switch s {
	case slots.StateFilled:
		return "filled"
	case slots.StateUnlockedEmpty:
		return "open"
	case slots.StateLockedCountingDown:
		return "locked"
	case slots.StateLockedAwaitingPrevious:
		return "waiting"
	case slots.StateGated:
		return "gated"
	}
	return string(s)
}

func slotDetail(v slots.SlotView, h *client.Hatchery) string {
	switch v.State {
	case slots.StateFilled:
		var parts []string
		if h != nil && v.Index < len(h.Images) {
			img := h.Images[v.Index]
			parts = append(parts, "uploaded "+img.UploadedAt.Local().Format("2 Jan 15:04"))
			if img.Status != "" {
				parts = append(parts, img.Status)
			}
			if img.AdminFeedback != "" {
				parts = append(parts, fmt.Sprintf("%q", img.AdminFeedback))
			}
		}
		if v.Deletable && v.Countdown != "" {
			parts = append(parts, "deletable for "+v.Countdown)
		} else if v.Deletable {
			parts = append(parts, "deletable")
		}
		return strings.Join(parts, ", ")
	case slots.StateLockedCountingDown:
		return "unlocks in " + v.Countdown
	case slots.StateLockedAwaitingPrevious:
		return fmt.Sprintf("upload slot %d first", v.Index)
	}
	return ""
}

func compactBoard(b slots.Board) string {
	parts := make([]string, 0, len(b.Slots))
	for _, v := range b.Slots {
		label := stateLabel(v.State)
		if v.Countdown != "" {
			label += " " + v.Countdown
		}
		parts = append(parts, fmt.Sprintf("%d:%s", v.Index+1, label))
	}
	return strings.Join(parts, " | ")
}
