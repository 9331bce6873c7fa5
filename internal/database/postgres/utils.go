package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parseUserUUID parses a user ID to uuid.UUID with consistent error wrapping
func parseUserUUID(userID domain.UserID) (uuid.UUID, error) {
	u, err := uuid.Parse(userID.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrInvalidUserID, userID)
	}
	return u, nil
}

// scanner is satisfied by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

// pointFromColumns builds a GeoPoint from a nullable latitude/longitude pair
func pointFromColumns(lat, lon *float64) *domain.GeoPoint {
	if lat == nil || lon == nil {
		return nil
	}
	return &domain.GeoPoint{Latitude: *lat, Longitude: *lon}
}

// pointToColumns splits an optional GeoPoint into nullable column values
func pointToColumns(p *domain.GeoPoint) (lat, lon *float64) {
	if p == nil {
		return nil, nil
	}
	la, lo := p.Latitude, p.Longitude
	return &la, &lo
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// userIDFromNullable converts a nullable uuid column scanned as text
func userIDFromNullable(id *string) *domain.UserID {
	if id == nil {
		return nil
	}
	u := domain.UserID(*id)
	return &u
}

func isInvalidUUID(err error) bool {
	return isPgError(err, PgErrorCodeInvalidText)
}
