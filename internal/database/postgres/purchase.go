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
)

const transactionColumns = `transaction_id, user_id, hatchery_id, status, items, total,
	image_urls, notes, created_at, approved_at`

// PurchaseRepository implements the purchase repository for PostgreSQL
type PurchaseRepository struct {
	db *pgxpool.Pool
}

// NewPurchaseRepository creates a new PurchaseRepository
func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// CreateTransaction inserts a transaction record
func (r *PurchaseRepository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	uid, err := parseUserUUID(tx.UserID)
	if err != nil {
		return err
	}
	items, err := json.Marshal(nonNilItems(tx.Items))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalLineItem, err)
	}
	urls, err := json.Marshal(nonNilStrings(tx.ImageURLs))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalLineItem, err)
	}

	var hatcheryID *string
	if tx.HatcheryID != "" {
		hatcheryID = &tx.HatcheryID
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO transactions (transaction_id, user_id, hatchery_id, status, items, total, image_urls, notes, created_at, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+transactionColumns,
		tx.ID, uid, hatcheryID, tx.Status, items, tx.Total, urls, tx.Notes, tx.CreatedAt, tx.ApprovedAt)
	stored, err := scanTransaction(row)
	if err != nil {
		if isPgError(err, PgErrorCodeForeignKeyViolation) {
			return fmt.Errorf("%w: unknown user or hatchery", domain.ErrInvalidInput)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateTransaction, err)
	}
	*tx = *stored
	return nil
}

// GetTransaction loads a transaction by id
func (r *PurchaseRepository) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1`, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTransaction, err)
	}
	return tx, nil
}

// ListTransactions returns a seller's purchase history, newest first
func (r *PurchaseRepository) ListTransactions(ctx context.Context, userID domain.UserID) ([]domain.Transaction, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanTransaction, err)
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToIterateRows, err)
	}
	return txs, nil
}

// ApproveTransaction approves a pending transaction in one conditional update
func (r *PurchaseRepository) ApproveTransaction(ctx context.Context, id string, at time.Time) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE transactions
		SET status = 'approved', approved_at = $2
		WHERE transaction_id = $1 AND status = 'pending'
		RETURNING `+transactionColumns, id, at)
	tx, err := scanTransaction(row)
	if err == nil {
		return tx, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToApproveTransaction, err)
	}

	// Distinguish a missing row from one that is no longer pending
	existing, getErr := r.GetTransaction(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("%w: status %s", domain.ErrAlreadyApproved, existing.Status)
}

func scanTransaction(row scanner) (*domain.Transaction, error) {
	var (
		tx         domain.Transaction
		userID     string
		hatcheryID *string
		itemsJSON  []byte
		urlsJSON   []byte
	)
	err := row.Scan(&tx.ID, &userID, &hatcheryID, &tx.Status, &itemsJSON, &tx.Total,
		&urlsJSON, &tx.Notes, &tx.CreatedAt, &tx.ApprovedAt)
	if err != nil {
		return nil, err
	}
	tx.UserID = domain.UserID(userID)
	if hatcheryID != nil {
		tx.HatcheryID = *hatcheryID
	}
	if err := json.Unmarshal(itemsJSON, &tx.Items); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalLineItem, err)
	}
	if len(urlsJSON) > 0 {
		if err := json.Unmarshal(urlsJSON, &tx.ImageURLs); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalLineItem, err)
		}
	}
	return &tx, nil
}

func nonNilItems(items []domain.LineItem) []domain.LineItem {
	if items == nil {
		return []domain.LineItem{}
	}
	return items
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
