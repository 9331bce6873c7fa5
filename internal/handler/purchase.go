package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/invoice"
	"github.com/osse101/HatcheryOps_Go/internal/logger"
	"github.com/osse101/HatcheryOps_Go/internal/purchase"
)

// Invoice output formats
const (
	invoiceFormatHTML = "html"
	invoiceFormatJSON = "json"
)

// LineItemRequest is one billed entry
type LineItemRequest struct {
	Description string `json:"description" validate:"required,max=200"`
	Quantity    int64  `json:"quantity" validate:"gt=0"`
	UnitPrice   int64  `json:"unitPrice" validate:"gte=0"`
}

// RecordPurchaseRequest is an admin-entered seed purchase
type RecordPurchaseRequest struct {
	UserID     string            `json:"userId" validate:"required,userid"`
	HatcheryID string            `json:"hatcheryId" validate:"max=64"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,max=50,dive"`
	ImageURLs  []string          `json:"imageUrls" validate:"max=10,dive,url"`
	Notes      string            `json:"notes" validate:"max=1000"`
}

// TransactionResponse wraps a single transaction
type TransactionResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message,omitempty"`
	Transaction *domain.Transaction `json:"transaction"`
}

// TransactionsResponse wraps a purchase history
type TransactionsResponse struct {
	Success      bool                 `json:"success"`
	Transactions []domain.Transaction `json:"transactions"`
}

// InvoiceResponse wraps a structured invoice
type InvoiceResponse struct {
	Success bool              `json:"success"`
	Invoice *invoice.Document `json:"invoice"`
}

// HandleListPurchases returns the caller's purchase history. Admins may pass userId.
// @Summary Purchase history
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param userId query string false "Seller id (admin only)"
// @Success 200 {object} TransactionsResponse
// @Router /api/v1/purchases [get]
func HandleListPurchases(svc purchase.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		target := id.UserID
		if raw := GetOptionalQueryParam(r, "userId", ""); raw != "" {
			parsed, err := domain.ParseUserID(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidUserIDError)
				return
			}
			if !id.CanAccess(parsed) {
				respondError(w, http.StatusForbidden, ErrMsgForbiddenError)
				return
			}
			target = parsed
		}

		list, err := svc.ListHistory(r.Context(), target)
		if err != nil {
			respondServiceError(w, r, "List purchases", err)
			return
		}
		if list == nil {
			list = []domain.Transaction{}
		}
		respondJSON(w, http.StatusOK, TransactionsResponse{Success: true, Transactions: list})
	}
}

// HandleGetPurchase returns one transaction
// @Summary Get a purchase
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param txId path string true "Transaction id"
// @Success 200 {object} TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/purchases/{txId} [get]
func HandleGetPurchase(svc purchase.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		tx, err := svc.Get(r.Context(), id, chi.URLParam(r, "txId"))
		if err != nil {
			respondServiceError(w, r, "Get purchase", err)
			return
		}
		respondJSON(w, http.StatusOK, TransactionResponse{Success: true, Transaction: tx})
	}
}

// HandleGetInvoice renders the invoice of an approved purchase
// @Summary Get an invoice
// @Description Printable HTML by default, structured JSON with format=json
// @Tags purchases
// @Produce html
// @Produce json
// @Security BearerAuth
// @Param txId path string true "Transaction id"
// @Param format query string false "html or json"
// @Success 200 {object} InvoiceResponse
// @Failure 409 {object} ErrorResponse "Purchase not approved"
// @Router /api/v1/purchases/{txId}/invoice [get]
func HandleGetInvoice(svc purchase.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		format := GetOptionalQueryParam(r, "format", invoiceFormatHTML)
		if format != invoiceFormatHTML && format != invoiceFormatJSON {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidFormat)
			return
		}

		doc, err := svc.Invoice(r.Context(), id, chi.URLParam(r, "txId"))
		if err != nil {
			respondServiceError(w, r, "Get invoice", err)
			return
		}

		if format == invoiceFormatJSON {
			respondJSON(w, http.StatusOK, InvoiceResponse{Success: true, Invoice: doc})
			return
		}

		buf := getBuffer()
		defer putBuffer(buf)
		if err := invoice.Render(buf, *doc); err != nil {
			logger.FromContext(r.Context()).Error(LogMsgInvoiceRender, "transaction_id", doc.TransactionID, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgRenderInvoiceFailed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

// HandleRecordPurchase stores a pending purchase for a seller
// @Summary Record a purchase
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordPurchaseRequest true "Purchase"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown seller"
// @Router /api/v1/admin/purchases [post]
func HandleRecordPurchase(svc purchase.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecordPurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record purchase"); err != nil {
			return
		}

		// Already validated by the userid tag
		sellerID, _ := domain.ParseUserID(req.UserID)
		items := make([]domain.LineItem, len(req.Items))
		for i, it := range req.Items {
			items[i] = domain.LineItem{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
		}

		tx, err := svc.Record(r.Context(), purchase.RecordRequest{
			UserID:     sellerID,
			HatcheryID: req.HatcheryID,
			Items:      items,
			ImageURLs:  req.ImageURLs,
			Notes:      req.Notes,
		})
		if err != nil {
			respondServiceError(w, r, "Record purchase", err)
			return
		}
		respondJSON(w, http.StatusCreated, TransactionResponse{Success: true, Message: MsgPurchaseRecorded, Transaction: tx})
	}
}

// HandleApprovePurchase approves a pending purchase
// @Summary Approve a purchase
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param txId path string true "Transaction id"
// @Success 200 {object} TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already approved"
// @Router /api/v1/admin/purchases/{txId}/approve [post]
func HandleApprovePurchase(svc purchase.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tx, err := svc.Approve(r.Context(), chi.URLParam(r, "txId"))
		if err != nil {
			respondServiceError(w, r, "Approve purchase", err)
			return
		}
		respondJSON(w, http.StatusOK, TransactionResponse{Success: true, Message: MsgPurchaseApproved, Transaction: tx})
	}
}
