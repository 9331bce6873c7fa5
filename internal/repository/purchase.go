package repository

import (
	"context"
	"time"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

// Purchase defines the interface for transaction persistence
type Purchase interface {
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID domain.UserID) ([]domain.Transaction, error)
	// ApproveTransaction moves a pending transaction to approved and returns it.
	// It fails with domain.ErrAlreadyApproved if the transaction is not pending.
	ApproveTransaction(ctx context.Context, id string, at time.Time) (*domain.Transaction, error)
}
