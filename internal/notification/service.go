// Package notification stores admin notices and stories and announces them
// on the event bus for live delivery.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/event"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
)

// Service defines the interface for notification operations
type Service interface {
	Send(ctx context.Context, req SendRequest) ([]domain.Notification, error)
	ListForUser(ctx context.Context, userID domain.UserID, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string, userID domain.UserID) error
	ActiveStories(ctx context.Context, userID domain.UserID) ([]domain.Notification, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

// SendRequest addresses a notification. No UserIDs means a broadcast.
type SendRequest struct {
	UserIDs  []domain.UserID
	Kind     string
	Title    string
	Body     string
	ImageURL string
}

type service struct {
	repo     Repository
	bus      event.Bus
	storyTTL time.Duration
	now      func() time.Time
}

// NewService creates a notification service
func NewService(repo Repository, bus event.Bus, storyTTL time.Duration) Service {
	if storyTTL <= 0 {
		storyTTL = DefaultStoryTTL
	}
	return &service{
		repo:     repo,
		bus:      bus,
		storyTTL: storyTTL,
		now:      time.Now,
	}
}

// Send stores one row per recipient, or a single broadcast row, and publishes
// each for live delivery. Stories get an expiry.
func (s *service) Send(ctx context.Context, req SendRequest) ([]domain.Notification, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Body = strings.TrimSpace(req.Body)
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var expiresAt *time.Time
	if req.Kind == domain.NotificationKindStory {
		exp := now.Add(s.storyTTL)
		expiresAt = &exp
	}

	build := func(target *domain.UserID) domain.Notification {
		return domain.Notification{
			ID:        uuid.NewString(),
			UserID:    target,
			Kind:      req.Kind,
			Title:     req.Title,
			Body:      req.Body,
			ImageURL:  strings.TrimSpace(req.ImageURL),
			CreatedAt: now,
			ExpiresAt: expiresAt,
		}
	}

	var pending []domain.Notification
	if len(req.UserIDs) == 0 {
		pending = append(pending, build(nil))
	} else {
		seen := make(map[domain.UserID]struct{}, len(req.UserIDs))
		for _, id := range req.UserIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			target := id
			pending = append(pending, build(&target))
		}
	}

	sent := make([]domain.Notification, 0, len(pending))
	for i := range pending {
		n := &pending[i]
		if err := s.repo.CreateNotification(ctx, n); err != nil {
			return sent, err
		}
		sent = append(sent, *n)
		s.publish(ctx, n)
	}

	logger.FromContext(ctx).Info(LogMsgNotificationSent, "kind", req.Kind, "count", len(sent), "broadcast", len(req.UserIDs) == 0)
	return sent, nil
}

func (s *service) publish(ctx context.Context, n *domain.Notification) {
	if s.bus == nil {
		return
	}
	var recipients []domain.UserID
	if n.UserID != nil {
		recipients = []domain.UserID{*n.UserID}
	}
	if err := s.bus.Publish(ctx, event.NewNotificationCreatedEvent(n, recipients)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "notification_id", n.ID, "error", err)
	}
}

func validate(req SendRequest) error {
	switch req.Kind {
	case domain.NotificationKindNotice, domain.NotificationKindStory:
	default:
		return fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidInput, req.Kind)
	}
	if req.Title == "" || len(req.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title must be 1 to %d characters", domain.ErrInvalidInput, MaxTitleLength)
	}
	if len(req.Body) > MaxBodyLength {
		return fmt.Errorf("%w: body longer than %d characters", domain.ErrInvalidInput, MaxBodyLength)
	}
	if req.Kind == domain.NotificationKindStory && strings.TrimSpace(req.ImageURL) == "" {
		return fmt.Errorf("%w: a story needs an image", domain.ErrInvalidInput)
	}
	if len(req.UserIDs) > MaxRecipients {
		return fmt.Errorf("%w: at most %d recipients", domain.ErrInvalidInput, MaxRecipients)
	}
	return nil
}

// ListForUser returns the user's notifications and broadcasts, newest first
func (s *service) ListForUser(ctx context.Context, userID domain.UserID, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	return s.repo.ListForUser(ctx, userID, s.now(), limit)
}

// MarkRead records that the user has seen a notification. Marking twice is a no-op.
func (s *service) MarkRead(ctx context.Context, id string, userID domain.UserID) error {
	return s.repo.MarkRead(ctx, id, userID, s.now().UTC())
}

// ActiveStories returns unexpired stories visible to the user
func (s *service) ActiveStories(ctx context.Context, userID domain.UserID) ([]domain.Notification, error) {
	return s.repo.ListActiveStories(ctx, userID, s.now())
}

// PurgeExpired deletes expired stories
func (s *service) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgStoriesPurged, "count", n)
	}
	return n, nil
}
