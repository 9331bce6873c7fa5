// Package invoice turns approved transactions into printable invoices.
package invoice

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/HatcheryOps_Go/internal/domain"
)

const (
	// NotAvailable is shown for missing text fields
	NotAvailable = "N/A"

	numberPrefix   = "INV-"
	idSuffixLength = 6
	dateLayout     = "02 Jan 2006"
	currencySymbol = "₹"
)

// Customer is the billed seller
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Line is one rendered line item
type Line struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Amount      int64  `json:"amount"`
}

// Document is the structured invoice: header, customer, lines, images and footer
type Document struct {
	Number        string   `json:"number"`
	TransactionID string   `json:"transactionId"`
	IssuedOn      string   `json:"issuedOn"`
	Status        string   `json:"status"`
	Customer      Customer `json:"customer"`
	Lines         []Line   `json:"lines"`
	Total         int64    `json:"total"`
	Images        []string `json:"images"`
	Notes         string   `json:"notes"`
	Footer        string   `json:"footer"`
}

// Number derives INV-{YYYY}{MM}-{last six characters of txID, uppercased}
func Number(txID string, approvedAt time.Time) string {
	txID = strings.TrimSpace(txID)
	if txID == "" || approvedAt.IsZero() {
		return NotAvailable
	}
	suffix := txID
	if len(suffix) > idSuffixLength {
		suffix = suffix[len(suffix)-idSuffixLength:]
	}
	return numberPrefix + approvedAt.Format("200601") + "-" + strings.ToUpper(suffix)
}

// FormatNumber groups digits the Indian way: the last three, then pairs.
// 1234567 becomes "12,34,567".
func FormatNumber(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
	}
	digits := strconv.FormatInt(n, 10)
	digits = strings.TrimPrefix(digits, "-")
	if len(digits) <= 3 {
		return sign + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)

	return sign + strings.Join(groups, ",") + "," + tail
}

// FormatCurrency prefixes the rupee symbol to FormatNumber
func FormatCurrency(n int64) string {
	return currencySymbol + FormatNumber(n)
}

// Build assembles the document. Missing text renders as N/A and missing
// numbers as zero. profile may be nil.
func Build(tx *domain.Transaction, profile *domain.Profile, footer string) Document {
	doc := Document{
		Number:        NotAvailable,
		TransactionID: NotAvailable,
		IssuedOn:      NotAvailable,
		Status:        NotAvailable,
		Customer: Customer{
			Name:    NotAvailable,
			Phone:   NotAvailable,
			Email:   NotAvailable,
			Address: NotAvailable,
		},
		Lines:  []Line{},
		Images: []string{},
		Notes:  NotAvailable,
		Footer: orNA(footer),
	}
	if tx == nil {
		return doc
	}

	doc.TransactionID = orNA(tx.ID)
	doc.Status = orNA(title(tx.Status))
	doc.Notes = orNA(tx.Notes)
	if tx.ApprovedAt != nil {
		doc.Number = Number(tx.ID, *tx.ApprovedAt)
		doc.IssuedOn = tx.ApprovedAt.Format(dateLayout)
	}

	for _, item := range tx.Items {
		doc.Lines = append(doc.Lines, Line{
			Description: orNA(item.Description),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount(),
		})
	}
	doc.Total = tx.Total
	if doc.Total == 0 {
		doc.Total = tx.ComputeTotal()
	}
	for _, url := range tx.ImageURLs {
		if strings.TrimSpace(url) != "" {
			doc.Images = append(doc.Images, url)
		}
	}

	if profile != nil {
		doc.Customer = Customer{
			Name:    orNA(title(strings.TrimSpace(profile.Name))),
			Phone:   orNA(profile.Phone),
			Email:   orNA(profile.Email),
			Address: orNA(profile.Address),
		}
	}
	return doc
}

// title uses a fresh caser per call since a Caser keeps state
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
