package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintshop/backend/internal/domain/ledger"
)

// CreateTransactionRequest represents a request to add a ledger entry
type CreateTransactionRequest struct {
	Date        time.Time       `json:"date"`
	Vendor      string          `json:"vendor" binding:"required,min=1,max=200"`
	Type        string          `json:"type" binding:"required,oneof=payable receivable"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=2000"`
}

// UpdateStatusRequest represents a request to change an entry's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed cancelled"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID             uuid.UUID       `json:"id"`
	Date           time.Time       `json:"date"`
	Vendor         string          `json:"vendor"`
	Description    string          `json:"description"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// VendorRangeResponse is a vendor's transaction history over a period with
// the period's boundary balances.
type VendorRangeResponse struct {
	Vendor         string                `json:"vendor"`
	OpeningBalance decimal.Decimal       `json:"opening_balance"`
	ClosingBalance decimal.Decimal       `json:"closing_balance"`
	Transactions   []TransactionResponse `json:"transactions"`
}

// VendorDaySummary aggregates one vendor's activity within a single day
type VendorDaySummary struct {
	Vendor          string          `json:"vendor"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	ClosingBalance  decimal.Decimal `json:"closing_balance"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	Count           int             `json:"count"`
}

// DayEndSummaryResponse is the per-vendor rollup for one calendar day
type DayEndSummaryResponse struct {
	Date    time.Time          `json:"date"`
	Vendors []VendorDaySummary `json:"vendors"`
}

// ToTransactionResponse converts a domain VendorTransaction
func ToTransactionResponse(t *ledger.VendorTransaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		Date:           t.Date,
		Vendor:         t.Vendor,
		Description:    t.Description,
		Type:           t.Type.String(),
		Amount:         t.Amount,
		OpeningBalance: t.OpeningBalance,
		ClosingBalance: t.ClosingBalance,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain VendorTransactions
func ToTransactionResponses(transactions []ledger.VendorTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}
	return responses
}
