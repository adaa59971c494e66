package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/paintshop/backend/internal/domain/inventory"
	"github.com/paintshop/backend/internal/domain/shared"
)

const (
	// maxAdjustAttempts bounds the retry loop for transient write conflicts
	maxAdjustAttempts = 5
	// adjustBackoffStep is multiplied by the attempt number between retries
	adjustBackoffStep = 100 * time.Millisecond
)

// AdjustmentService applies signed quantity deltas to the stock ledger.
// Every stock mutation in the system funnels through Adjust; the row is
// created lazily on first touch and never mutated by read-modify-write.
type AdjustmentService struct {
	stockRepo inventory.StockLevelRepository
	logger    *zap.Logger
}

// NewAdjustmentService creates a new AdjustmentService
func NewAdjustmentService(stockRepo inventory.StockLevelRepository, logger *zap.Logger) *AdjustmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdjustmentService{stockRepo: stockRepo, logger: logger}
}

// Adjust applies the delta to the (product, color) row as one atomic
// upsert-increment. Transient write conflicts are retried up to five
// attempts with a linear backoff before the conflict is surfaced.
func (s *AdjustmentService) Adjust(ctx context.Context, productID uuid.UUID, colorID *uuid.UUID, delta decimal.Decimal, actor uuid.UUID) (*inventory.StockLevel, error) {
	return s.AdjustWith(ctx, s.stockRepo, productID, colorID, delta, actor)
}

// AdjustWith runs the same protocol against the given repository. Journal
// flows pass their transaction-scoped repository so the adjustment commits
// or rolls back with the journal write.
func (s *AdjustmentService) AdjustWith(ctx context.Context, repo inventory.StockLevelRepository, productID uuid.UUID, colorID *uuid.UUID, delta decimal.Decimal, actor uuid.UUID) (*inventory.StockLevel, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	adj := inventory.Adjustment{
		ProductID: productID,
		ColorID:   colorID,
		Delta:     delta,
		Actor:     actor,
		At:        time.Now(),
	}

	var lastErr error
	for attempt := 1; attempt <= maxAdjustAttempts; attempt++ {
		level, err := repo.UpsertAdd(ctx, adj)
		if err == nil {
			return level, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, err
		}
		lastErr = err

		s.logger.Warn("stock adjustment conflict, retrying",
			zap.String("product_id", productID.String()),
			zap.Int("attempt", attempt),
		)

		if attempt < maxAdjustAttempts {
			select {
			case <-time.After(adjustBackoffStep * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, lastErr
}
