// Package purchase records seed purchases, approves them and builds invoices.
package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/HatcheryOps_Go/internal/auth"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/event"
	"github.com/osse101/HatcheryOps_Go/internal/invoice"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
)

// Service defines the interface for purchase operations
type Service interface {
	Record(ctx context.Context, req RecordRequest) (*domain.Transaction, error)
	Approve(ctx context.Context, txID string) (*domain.Transaction, error)
	ListHistory(ctx context.Context, userID domain.UserID) ([]domain.Transaction, error)
	Get(ctx context.Context, actor auth.Identity, txID string) (*domain.Transaction, error)
	Invoice(ctx context.Context, actor auth.Identity, txID string) (*invoice.Document, error)
}

// RecordRequest is an admin-entered purchase
type RecordRequest struct {
	UserID     domain.UserID
	HatcheryID string
	Items      []domain.LineItem
	ImageURLs  []string
	Notes      string
}

type service struct {
	repo     Repository
	profiles ProfileReader
	bus      event.Bus
	footer   string
	now      func() time.Time
}

// NewService creates a purchase service. An empty footer uses DefaultInvoiceNote.
func NewService(repo Repository, profiles ProfileReader, bus event.Bus, footer string) Service {
	if footer == "" {
		footer = DefaultInvoiceNote
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		bus:      bus,
		footer:   footer,
		now:      time.Now,
	}
}

// Record stores a pending transaction for a seller
func (s *service) Record(ctx context.Context, req RecordRequest) (*domain.Transaction, error) {
	if err := validateRecord(req); err != nil {
		return nil, err
	}
	if _, err := s.profiles.GetProfile(ctx, req.UserID); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		ID:         strings.ReplaceAll(uuid.NewString(), "-", ""),
		UserID:     req.UserID,
		HatcheryID: req.HatcheryID,
		Status:     domain.TransactionPending,
		Items:      req.Items,
		ImageURLs:  req.ImageURLs,
		Notes:      strings.TrimSpace(req.Notes),
		CreatedAt:  s.now().UTC(),
	}
	tx.Total = tx.ComputeTotal()

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgTransactionRecorded, "transaction_id", tx.ID, "user_id", tx.UserID, "total", tx.Total)
	return tx, nil
}

func validateRecord(req RecordRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: empty", domain.ErrInvalidUserID)
	}
	if len(req.Items) == 0 || len(req.Items) > MaxLineItems {
		return fmt.Errorf("%w: between 1 and %d line items required", domain.ErrInvalidInput, MaxLineItems)
	}
	for i, item := range req.Items {
		desc := strings.TrimSpace(item.Description)
		switch {
		case desc == "":
			return fmt.Errorf("%w: item %d has no description", domain.ErrInvalidInput, i+1)
		case len(desc) > MaxDescriptionLen:
			return fmt.Errorf("%w: item %d description too long", domain.ErrInvalidInput, i+1)
		case item.Quantity <= 0 || item.Quantity > MaxLineQuantity:
			return fmt.Errorf("%w: item %d quantity must be between 1 and %d", domain.ErrInvalidInput, i+1, MaxLineQuantity)
		case item.UnitPrice < 0 || item.UnitPrice > MaxUnitPrice:
			return fmt.Errorf("%w: item %d unit price out of range", domain.ErrInvalidInput, i+1)
		}
	}
	if len(req.ImageURLs) > MaxImageURLs {
		return fmt.Errorf("%w: at most %d images", domain.ErrInvalidInput, MaxImageURLs)
	}
	if len(req.Notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", domain.ErrInvalidInput, MaxNotesLength)
	}
	return nil
}

// Approve marks a pending transaction approved and announces its invoice number
func (s *service) Approve(ctx context.Context, txID string) (*domain.Transaction, error) {
	tx, err := s.repo.ApproveTransaction(ctx, txID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	number := invoice.Number(tx.ID, *tx.ApprovedAt)
	log := logger.FromContext(ctx)
	log.Info(LogMsgTransactionApproved, "transaction_id", tx.ID, "invoice", number)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewPurchaseApprovedEvent(tx, number)); err != nil {
			log.Warn(LogMsgPublishFailed, "transaction_id", tx.ID, "error", err)
		}
	}
	return tx, nil
}

// ListHistory returns a seller's transactions, newest first
func (s *service) ListHistory(ctx context.Context, userID domain.UserID) ([]domain.Transaction, error) {
	return s.repo.ListTransactions(ctx, userID)
}

// Get loads a transaction the actor may see
func (s *service) Get(ctx context.Context, actor auth.Identity, txID string) (*domain.Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(tx.UserID) {
		return nil, domain.ErrForbidden
	}
	return tx, nil
}

// Invoice builds the invoice for an approved transaction. A missing profile
// still yields a document with N/A customer fields.
func (s *service) Invoice(ctx context.Context, actor auth.Identity, txID string) (*invoice.Document, error) {
	tx, err := s.Get(ctx, actor, txID)
	if err != nil {
		return nil, err
	}
	if tx.Status != domain.TransactionApproved || tx.ApprovedAt == nil {
		return nil, domain.ErrInvoiceUnavailable
	}

	profile, err := s.profiles.GetProfile(ctx, tx.UserID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgCustomerLookupFailed, "user_id", tx.UserID, "error", err)
		profile = nil
	}

	doc := invoice.Build(tx, profile, s.footer)
	return &doc, nil
}
