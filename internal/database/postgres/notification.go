package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// NotificationRepository implements the notification repository for PostgreSQL
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification inserts a notification. A nil UserID stores a broadcast.
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	var target *string
	if n.UserID != nil {
		uid, err := parseUserUUID(*n.UserID)
		if err != nil {
			return err
		}
		s := uid.String()
		target = &s
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (notification_id, user_id, kind, title, body, image_url, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, target, n.Kind, n.Title, n.Body, n.ImageURL, n.CreatedAt, n.ExpiresAt)
	if err != nil {
		if isPgError(err, PgErrorCodeForeignKeyViolation) {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, *n.UserID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateNotification, err)
	}
	return nil
}

// ListForUser returns unexpired notifications addressed to the user or broadcast
func (r *NotificationRepository) ListForUser(ctx context.Context, userID domain.UserID, now time.Time, limit int) ([]domain.Notification, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}

	rows, err := r.db.Query(ctx, `
		SELECT n.notification_id, n.user_id, n.kind, n.title, n.body, n.image_url,
		       n.created_at, n.expires_at, nr.read_at
		FROM notifications n
		LEFT JOIN notification_reads nr ON nr.notification_id = n.notification_id AND nr.user_id = $1
		WHERE (n.user_id = $1 OR n.user_id IS NULL)
		  AND (n.expires_at IS NULL OR n.expires_at > $2)
		ORDER BY n.created_at DESC
		LIMIT $3`, uid, now, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListNotifications, err)
	}
	return collectNotifications(rows)
}

// ListActiveStories returns unexpired stories visible to the user
func (r *NotificationRepository) ListActiveStories(ctx context.Context, userID domain.UserID, now time.Time) ([]domain.Notification, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT n.notification_id, n.user_id, n.kind, n.title, n.body, n.image_url,
		       n.created_at, n.expires_at, nr.read_at
		FROM notifications n
		LEFT JOIN notification_reads nr ON nr.notification_id = n.notification_id AND nr.user_id = $1
		WHERE n.kind = 'story'
		  AND (n.user_id = $1 OR n.user_id IS NULL)
		  AND (n.expires_at IS NULL OR n.expires_at > $2)
		ORDER BY n.created_at DESC`, uid, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListNotifications, err)
	}
	return collectNotifications(rows)
}

// MarkRead records a read receipt. Marking twice keeps the first read time.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string, userID domain.UserID, at time.Time) error {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO notification_reads (notification_id, user_id, read_at)
		SELECT n.notification_id, $2, $3
		FROM notifications n
		WHERE n.notification_id::text = $1 AND (n.user_id = $2 OR n.user_id IS NULL)
		ON CONFLICT (notification_id, user_id) DO NOTHING`, id, uid, at)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkRead, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Nothing inserted: either already read or not visible to this user
	var visible bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE notification_id::text = $1 AND (user_id = $2 OR user_id IS NULL)
		)`, id, uid).Scan(&visible)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkRead, err)
	}
	if !visible {
		return fmt.Errorf("%w: %s", domain.ErrNotificationNotFound, id)
	}
	return nil
}

// DeleteExpired removes notifications whose expiry has passed
func (r *NotificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE expires_at IS NOT NULL AND expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteExpired, err)
	}
	return tag.RowsAffected(), nil
}

func collectNotifications(rows pgx.Rows) ([]domain.Notification, error) {
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		var (
			n      domain.Notification
			target *string
		)
		if err := rows.Scan(&n.ID, &target, &n.Kind, &n.Title, &n.Body, &n.ImageURL,
			&n.CreatedAt, &n.ExpiresAt, &n.ReadAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanNotification, err)
		}
		n.UserID = userIDFromNullable(target)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToIterateRows, err)
	}
	return out, nil
}
