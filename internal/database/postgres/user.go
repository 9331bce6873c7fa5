package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

const profileColumns = `user_id, name, phone, email, address, role, seeds_count,
	latitude, longitude, created_at, updated_at`

// ProfileRepository implements the profile repository for PostgreSQL
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile loads a profile by user id
func (r *ProfileRepository) GetProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProfile, err)
	}
	return p, nil
}

// UpsertProfile inserts a profile or refreshes its contact fields.
// Role and seeds count of an existing row are left untouched.
func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	id, err := parseUserUUID(profile.ID)
	if err != nil {
		return err
	}
	lat, lon := pointToColumns(profile.Location)

	query := `
		INSERT INTO profiles (user_id, name, phone, email, address, role, seeds_count, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name,
		    phone = EXCLUDED.phone,
		    email = EXCLUDED.email,
		    address = EXCLUDED.address,
		    latitude = COALESCE(EXCLUDED.latitude, profiles.latitude),
		    longitude = COALESCE(EXCLUDED.longitude, profiles.longitude),
		    updated_at = NOW()
		RETURNING ` + profileColumns

	role := profile.Role
	if role == "" {
		role = domain.RoleSeller
	}
	row := r.db.QueryRow(ctx, query, id, profile.Name, profile.Phone, profile.Email, profile.Address,
		role, profile.SeedsCount, lat, lon)
	stored, err := scanProfile(row)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertProfile, err)
	}
	*profile = *stored
	return nil
}

// UpdateProfile overwrites the editable fields of an existing profile
func (r *ProfileRepository) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	id, err := parseUserUUID(profile.ID)
	if err != nil {
		return err
	}
	lat, lon := pointToColumns(profile.Location)

	query := `
		UPDATE profiles
		SET name = $2, phone = $3, email = $4, address = $5, latitude = $6, longitude = $7, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	row := r.db.QueryRow(ctx, query, id, profile.Name, profile.Phone, profile.Email, profile.Address, lat, lon)
	stored, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, profile.ID)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProfile, err)
	}
	*profile = *stored
	return nil
}

// SetSeedsCount assigns the seller's seed count
func (r *ProfileRepository) SetSeedsCount(ctx context.Context, userID domain.UserID, seeds int) error {
	id, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `UPDATE profiles SET seeds_count = $2, updated_at = NOW() WHERE user_id = $1`, id, seeds)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetSeeds, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return nil
}

// ListProfiles returns profiles with the given role, or every profile when role is empty
func (r *ProfileRepository) ListProfiles(ctx context.Context, role string) ([]domain.Profile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE ($1 = '' OR role = $1)
		ORDER BY created_at DESC`, role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListProfiles, err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanProfileRow, err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToIterateRows, err)
	}
	return profiles, nil
}

func scanProfile(row scanner) (*domain.Profile, error) {
	var (
		p        domain.Profile
		id       string
		lat, lon *float64
	)
	err := row.Scan(&id, &p.Name, &p.Phone, &p.Email, &p.Address, &p.Role, &p.SeedsCount,
		&lat, &lon, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ID = domain.UserID(id)
	p.Location = pointFromColumns(lat, lon)
	return &p, nil
}
