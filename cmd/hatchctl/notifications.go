package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/osse101/HatcheryOps_Go/internal/client"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/sse"
)

func newNotificationsCmd(a *app) *cobra.Command {
	var (
		follow bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show notices and stories from the admins",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			stories, err := c.Stories(cmd.Context())
			if err != nil {
				return err
			}
			list, err := c.Notifications(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, n := range stories {
				printNotification(out, n)
			}
			for _, n := range list {
				if n.Kind != domain.NotificationKindStory {
					printNotification(out, n)
				}
			}
			if len(stories) == 0 && len(list) == 0 && !follow {
				fmt.Fprintln(out, "No notifications.")
			}

			if !follow {
				return nil
			}

			ctx, stop := interruptible(cmd.Context())
			defer stop()
			fmt.Fprintln(out, "Waiting for new notifications (Ctrl-C to stop)...")
			err = c.StreamEvents(ctx, nil, func(evt client.Event) error {
				return printEvent(out, evt)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep streaming new events")
	cmd.Flags().IntVar(&limit, "limit", 20, "how many notifications to list")
	return cmd
}

func printNotification(w io.Writer, n domain.Notification) {
	tag := "notice"
	if n.Kind == domain.NotificationKindStory {
		tag = "story"
	}
	fmt.Fprintf(w, "[%s] %s  %s\n", n.CreatedAt.Local().Format("2 Jan 15:04"), tag, n.Title)
	if n.Body != "" {
		fmt.Fprintf(w, "    %s\n", n.Body)
	}
	if n.ImageURL != "" {
		fmt.Fprintf(w, "    %s\n", n.ImageURL)
	}
}

func printEvent(w io.Writer, evt client.Event) error {
	switch evt.Type {
	case sse.EventTypeConnected, sse.EventTypeKeepalive:
		return nil
	case sse.EventTypeNotification:
		var n domain.Notification
		if err := evt.Decode(&n); err != nil {
			return err
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = evt.Time()
		}
		printNotification(w, n)
	default:
		fmt.Fprintf(w, "[%s] %s  %s\n", evt.Time().Local().Format("2 Jan 15:04"), evt.Type, string(evt.Payload))
	}
	return nil
}
