package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/paintshop/backend/internal/domain/inventory"
	"github.com/paintshop/backend/internal/domain/journal"
	"github.com/paintshop/backend/internal/domain/shared"
)

// DepletionResult reports how much of a requested deduction the purchase
// journal could absorb. Shortfall is positive when the lots ran dry before
// the full amount was consumed.
type DepletionResult struct {
	Depleted  decimal.Decimal `json:"depleted"`
	Shortfall decimal.Decimal `json:"shortfall"`
}

// DepletionService walks the purchase journal oldest first, consuming
// remaining lot quantities as sales happen and concentrating them back on
// the oldest lot when a sale is deleted.
//
// The read-walk-write sequence is not atomic at the storage level, so a
// per-key mutex serializes depletions for the same (product, color) pair
// within the process.
type DepletionService struct {
	purchaseRepo journal.PurchaseRepository
	logger       *zap.Logger

	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

// NewDepletionService creates a new DepletionService
func NewDepletionService(purchaseRepo journal.PurchaseRepository, logger *zap.Logger) *DepletionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepletionService{
		purchaseRepo: purchaseRepo,
		logger:       logger,
		keys:         make(map[string]*sync.Mutex),
	}
}

func (s *DepletionService) keyLock(productID uuid.UUID, colorID *uuid.UUID) *sync.Mutex {
	key := fmt.Sprintf("%s/%s", productID, inventory.ColorKey(colorID))
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.keys[key]
	if !ok {
		lock = &sync.Mutex{}
		s.keys[key] = lock
	}
	return lock
}

// Deplete consumes quantity from the purchase lots of the (product, color)
// key oldest first. Lots that reach zero stay in the journal with zero
// remaining quantity. Running out of lots is not an error: the shortfall is
// reported in the result and the caller decides how to surface it.
func (s *DepletionService) Deplete(ctx context.Context, productID uuid.UUID, colorID *uuid.UUID, quantity decimal.Decimal) (*DepletionResult, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Depletion quantity must be positive")
	}

	lock := s.keyLock(productID, colorID)
	lock.Lock()
	defer lock.Unlock()

	lots, err := s.purchaseRepo.FindForDepletion(ctx, productID, colorID)
	if err != nil {
		return nil, err
	}

	remaining := quantity
	depleted := decimal.Zero
	for i := range lots {
		if !remaining.IsPositive() {
			break
		}
		lot := &lots[i]
		taken := lot.Deduct(remaining)
		if !taken.IsPositive() {
			continue
		}
		if err := s.purchaseRepo.Save(ctx, lot); err != nil {
			return nil, err
		}
		remaining = remaining.Sub(taken)
		depleted = depleted.Add(taken)
	}

	if remaining.IsPositive() {
		s.logger.Warn("purchase journal exhausted during depletion",
			zap.String("product_id", productID.String()),
			zap.String("requested", quantity.String()),
			zap.String("shortfall", remaining.String()),
		)
	}

	return &DepletionResult{Depleted: depleted, Shortfall: remaining}, nil
}

// Restore concentrates the full quantity back on the oldest lot of the
// (product, color) key. When the key has no lots at all the restore is a
// logged no-op, matching the non-fatal treatment of depletion shortfalls.
func (s *DepletionService) Restore(ctx context.Context, productID uuid.UUID, colorID *uuid.UUID, quantity decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Restore quantity must be positive")
	}

	lock := s.keyLock(productID, colorID)
	lock.Lock()
	defer lock.Unlock()

	oldest, err := s.purchaseRepo.FindOldest(ctx, productID, colorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("no purchase lots to restore into",
				zap.String("product_id", productID.String()),
				zap.String("quantity", quantity.String()),
			)
			return nil
		}
		return err
	}

	oldest.Restore(quantity)
	return s.purchaseRepo.Save(ctx, oldest)
}
