package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/paintshop/backend/internal/domain/ledger"
	"github.com/paintshop/backend/internal/domain/shared"
)

// LedgerService maintains per-vendor running balances. Every new entry is
// chained off the closing balance of the latest entry dated strictly before
// the start of its own day, so all entries within one day share the same
// pre-day opening. Status changes and deletions leave later entries as they
// were written.
type LedgerService struct {
	txRepo ledger.VendorTransactionRepository
	logger *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(txRepo ledger.VendorTransactionRepository, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{txRepo: txRepo, logger: logger}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Add records a new ledger entry for the vendor
func (s *LedgerService) Add(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	opening, _, err := s.txRepo.LastClosingBefore(ctx, req.Vendor, startOfDay(date))
	if err != nil {
		return nil, err
	}

	tx, err := ledger.NewVendorTransaction(date, req.Vendor, ledger.TransactionType(req.Type), req.Amount, req.Description, opening)
	if err != nil {
		return nil, err
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("ledger entry recorded",
		zap.String("vendor", tx.Vendor),
		zap.String("type", tx.Type.String()),
		zap.String("amount", tx.Amount.String()),
		zap.String("closing", tx.ClosingBalance.String()),
	)

	response := ToTransactionResponse(tx)
	return &response, nil
}

// Daily returns all transactions of one calendar day, date ascending
func (s *LedgerService) Daily(ctx context.Context, date time.Time) ([]TransactionResponse, error) {
	from := startOfDay(date)
	transactions, err := s.txRepo.FindByDateRange(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(transactions), nil
}

// VendorRange returns one vendor's history over an optional period. The
// range's opening is the first entry's opening and its closing the last
// entry's closing; an empty range is NotFound.
func (s *LedgerService) VendorRange(ctx context.Context, vendor string, from, to *time.Time) (*VendorRangeResponse, error) {
	transactions, err := s.txRepo.FindByVendor(ctx, vendor, from, to)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, shared.ErrNotFound
	}

	return &VendorRangeResponse{
		Vendor:         vendor,
		OpeningBalance: transactions[0].OpeningBalance,
		ClosingBalance: transactions[len(transactions)-1].ClosingBalance,
		Transactions:   ToTransactionResponses(transactions),
	}, nil
}

// DayEndSummary rolls one day up by vendor: opening from the vendor's first
// entry, closing from its last, with per-type totals. Vendors appear in
// first-transaction order so repeated calls produce identical output.
func (s *LedgerService) DayEndSummary(ctx context.Context, date time.Time) (*DayEndSummaryResponse, error) {
	from := startOfDay(date)
	transactions, err := s.txRepo.FindByDateRange(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	order := make([]string, 0)
	summaries := make(map[string]*VendorDaySummary)

	for i := range transactions {
		tx := &transactions[i]
		summary, ok := summaries[tx.Vendor]
		if !ok {
			summary = &VendorDaySummary{
				Vendor:          tx.Vendor,
				OpeningBalance:  tx.OpeningBalance,
				TotalPayable:    decimal.Zero,
				TotalReceivable: decimal.Zero,
			}
			summaries[tx.Vendor] = summary
			order = append(order, tx.Vendor)
		}

		summary.ClosingBalance = tx.ClosingBalance
		summary.Count++
		switch tx.Type {
		case ledger.TransactionTypePayable:
			summary.TotalPayable = summary.TotalPayable.Add(tx.Amount)
		case ledger.TransactionTypeReceivable:
			summary.TotalReceivable = summary.TotalReceivable.Add(tx.Amount)
		}
	}

	vendors := make([]VendorDaySummary, len(order))
	for i, vendor := range order {
		vendors[i] = *summaries[vendor]
	}

	return &DayEndSummaryResponse{Date: from, Vendors: vendors}, nil
}

// UpdateStatus transitions an entry's status without recomputing the chain
func (s *LedgerService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.SetStatus(ledger.TransactionStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	response := ToTransactionResponse(tx)
	return &response, nil
}

// Delete removes an entry outright; later entries keep their stored balances
func (s *LedgerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.txRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.txRepo.Delete(ctx, id)
}
