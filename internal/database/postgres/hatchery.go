package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/repository"
)

const hatcheryColumns = `hatchery_id, user_id, name, status, site_latitude, site_longitude,
	images, start_date, end_date, created_at, updated_at`

// HatcheryRepository implements the hatchery repository for PostgreSQL
type HatcheryRepository struct {
	db *pgxpool.Pool
}

// NewHatcheryRepository creates a new HatcheryRepository
func NewHatcheryRepository(db *pgxpool.Pool) *HatcheryRepository {
	return &HatcheryRepository{db: db}
}

// querier is satisfied by both the pool and an open transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetHatchery loads a hatchery by id
func (r *HatcheryRepository) GetHatchery(ctx context.Context, id string) (*domain.Hatchery, error) {
	return getHatchery(ctx, r.db, id, false)
}

// GetCurrentHatchery returns the seller's most recent cycle
func (r *HatcheryRepository) GetCurrentHatchery(ctx context.Context, userID domain.UserID) (*domain.Hatchery, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `
		SELECT `+hatcheryColumns+`
		FROM hatcheries
		WHERE user_id = $1
		ORDER BY (status = 'active') DESC, created_at DESC
		LIMIT 1`, uid)
	h, err := scanHatchery(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrHatcheryNotFound, userID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetHatchery, err)
	}
	return h, nil
}

// CreateHatchery inserts a new cycle. A seller may only have one active cycle.
func (r *HatcheryRepository) CreateHatchery(ctx context.Context, h *domain.Hatchery) error {
	uid, err := parseUserUUID(h.UserID)
	if err != nil {
		return err
	}
	images, err := marshalImages(h.Images)
	if err != nil {
		return err
	}
	lat, lon := pointToColumns(h.Site)

	row := r.db.QueryRow(ctx, `
		INSERT INTO hatcheries (hatchery_id, user_id, name, status, site_latitude, site_longitude,
			images, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING `+hatcheryColumns,
		h.ID, uid, h.Name, h.Status, lat, lon, images, h.StartDate, h.EndDate)
	stored, err := scanHatchery(row)
	if err != nil {
		if isPgError(err, PgErrorCodeUniqueViolation) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgActiveHatcheryExists)
		}
		if isPgError(err, PgErrorCodeForeignKeyViolation) {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, h.UserID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateHatchery, err)
	}
	*h = *stored
	return nil
}

// ListHatcheries returns cycles with the given status, or all when status is empty
func (r *HatcheryRepository) ListHatcheries(ctx context.Context, status string) ([]domain.Hatchery, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+hatcheryColumns+`
		FROM hatcheries
		WHERE ($1 = '' OR status = $1)
		ORDER BY updated_at DESC`, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListHatcheries, err)
	}
	return collectHatcheries(rows)
}

// ListDueForClose returns active cycles whose end date has passed
func (r *HatcheryRepository) ListDueForClose(ctx context.Context, now time.Time) ([]domain.Hatchery, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+hatcheryColumns+`
		FROM hatcheries
		WHERE status = 'active' AND end_date <= $1
		ORDER BY end_date`, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListHatcheries, err)
	}
	return collectHatcheries(rows)
}

// BeginTx starts a transaction for row-locked slot mutations
func (r *HatcheryRepository) BeginTx(ctx context.Context) (repository.HatcheryTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &hatcheryTx{tx: tx}, nil
}

type hatcheryTx struct {
	tx pgx.Tx
}

func (t *hatcheryTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *hatcheryTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetHatcheryForUpdate loads the hatchery and holds its row lock until the tx ends
func (t *hatcheryTx) GetHatcheryForUpdate(ctx context.Context, id string) (*domain.Hatchery, error) {
	return getHatchery(ctx, t.tx, id, true)
}

// UpdateHatchery persists status, site and images
func (t *hatcheryTx) UpdateHatchery(ctx context.Context, h *domain.Hatchery) error {
	images, err := marshalImages(h.Images)
	if err != nil {
		return err
	}
	lat, lon := pointToColumns(h.Site)

	tag, err := t.tx.Exec(ctx, `
		UPDATE hatcheries
		SET name = $2, status = $3, site_latitude = $4, site_longitude = $5, images = $6,
		    end_date = $7, updated_at = $8
		WHERE hatchery_id = $1`,
		h.ID, h.Name, h.Status, lat, lon, images, h.EndDate, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateHatchery, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrHatcheryNotFound, h.ID)
	}
	return nil
}

func getHatchery(ctx context.Context, q querier, id string, forUpdate bool) (*domain.Hatchery, error) {
	query := `SELECT ` + hatcheryColumns + ` FROM hatcheries WHERE hatchery_id = $1`
	op := ErrMsgFailedToGetHatchery
	if forUpdate {
		query += ` FOR UPDATE`
		op = ErrMsgFailedToLockHatcheryRow
	}

	h, err := scanHatchery(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrHatcheryNotFound, id)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return h, nil
}

func collectHatcheries(rows pgx.Rows) ([]domain.Hatchery, error) {
	defer rows.Close()

	hatcheries := []domain.Hatchery{}
	for rows.Next() {
		h, err := scanHatchery(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanHatcheryRow, err)
		}
		hatcheries = append(hatcheries, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToIterateRows, err)
	}
	return hatcheries, nil
}

func scanHatchery(row scanner) (*domain.Hatchery, error) {
	var (
		h          domain.Hatchery
		userID     string
		lat, lon   *float64
		imagesJSON []byte
	)
	err := row.Scan(&h.ID, &userID, &h.Name, &h.Status, &lat, &lon, &imagesJSON,
		&h.StartDate, &h.EndDate, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	h.UserID = domain.UserID(userID)
	h.Site = pointFromColumns(lat, lon)

	h.Images = []domain.HatcheryImage{}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &h.Images); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalImages, err)
		}
	}
	return &h, nil
}

func marshalImages(images []domain.HatcheryImage) ([]byte, error) {
	if images == nil {
		images = []domain.HatcheryImage{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalImages, err)
	}
	return data, nil
}
