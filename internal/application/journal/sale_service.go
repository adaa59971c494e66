package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appinventory "github.com/paintshop/backend/internal/application/inventory"
	"github.com/paintshop/backend/internal/domain/catalog"
	"github.com/paintshop/backend/internal/domain/journal"
	"github.com/paintshop/backend/internal/domain/shared"
)

// SaleService records outgoing stock. The sale row and its negative stock
// adjustment commit in one transaction; lot depletion runs afterwards
// because running out of lots must not void the sale.
type SaleService struct {
	saleRepo    journal.SaleRepository
	productRepo catalog.ProductRepository
	colorRepo   catalog.ColorRepository
	txScope     TransactionScope
	adjuster    *appinventory.AdjustmentService
	depleter    *appinventory.DepletionService
	logger      *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo journal.SaleRepository,
	productRepo catalog.ProductRepository,
	colorRepo catalog.ColorRepository,
	txScope TransactionScope,
	adjuster *appinventory.AdjustmentService,
	depleter *appinventory.DepletionService,
	logger *zap.Logger,
) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		colorRepo:   colorRepo,
		txScope:     txScope,
		adjuster:    adjuster,
		depleter:    depleter,
		logger:      logger,
	}
}

// Create records a sale. When no color is given the product's code is
// matched against active color code names so counter staff can sell coded
// products without picking the color by hand.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest, actor uuid.UUID) (*CreateSaleResult, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	colorID := req.ColorID
	if colorID == nil && product.Code != "" {
		color, err := s.colorRepo.FindByCodeName(ctx, product.Code)
		switch {
		case err == nil:
			id := color.ID
			colorID = &id
		case errors.Is(err, shared.ErrNotFound):
			// unresolvable codes fall back to the colorless variant
		default:
			return nil, err
		}
	}

	sale, err := journal.NewSale(req.Date, req.CustomerName, req.ProductID, colorID, req.Quantity, req.UnitPrice, req.Discount, actor)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Sales().Create(ctx, sale); err != nil {
			return err
		}
		_, err := s.adjuster.AdjustWith(ctx, repos.Stock(), sale.ProductID, sale.ColorID, sale.Quantity.Neg(), actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &CreateSaleResult{Sale: ToSaleResponse(sale)}

	depletion, err := s.depleter.Deplete(ctx, sale.ProductID, sale.ColorID, sale.Quantity)
	if err != nil {
		s.logger.Error("lot depletion failed after sale commit",
			zap.String("sale_id", sale.ID.String()),
			zap.Error(err),
		)
		result.Warnings = append(result.Warnings, "sale recorded but lot depletion failed")
		return result, nil
	}
	if depletion.Shortfall.IsPositive() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("purchase history short by %s units for this product", depletion.Shortfall))
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("product_id", sale.ProductID.String()),
		zap.String("quantity", sale.Quantity.String()),
		zap.String("total", sale.TotalAmount.String()),
	)
	return result, nil
}

// Delete removes a sale, returns its quantity to the stock ledger and
// concentrates the units back on the oldest purchase lot.
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	var sale *journal.Sale

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}
		sale = found

		if err := repos.Sales().Delete(ctx, id); err != nil {
			return err
		}
		_, err = s.adjuster.AdjustWith(ctx, repos.Stock(), sale.ProductID, sale.ColorID, sale.Quantity, actor)
		return err
	})
	if err != nil {
		return err
	}

	if err := s.depleter.Restore(ctx, sale.ProductID, sale.ColorID, sale.Quantity); err != nil {
		s.logger.Error("lot restore failed after sale deletion",
			zap.String("sale_id", id.String()),
			zap.Error(err),
		)
	}
	return nil
}

// GetByID returns one sale entry
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List returns sales matching the filter with pagination metadata
func (s *SaleService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SaleResponse], error) {
	sales, err := s.saleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.saleRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToSaleResponses(sales), total, filter.Page, filter.PageSize)
	return &result, nil
}
