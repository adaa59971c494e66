package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/paintshop/backend/internal/domain/catalog"
	"github.com/paintshop/backend/internal/domain/inventory"
	"github.com/paintshop/backend/internal/domain/shared"
)

// StockView is the read model for inventory listings. Virtual rows stand in
// for active products that have never been stocked: they carry no row ID and
// cannot be used as update targets.
type StockView struct {
	ID            *uuid.UUID          `json:"id,omitempty"`
	ProductID     uuid.UUID           `json:"product_id"`
	ProductName   string              `json:"product_name"`
	ProductType   catalog.ProductType `json:"product_type"`
	ColorID       *uuid.UUID          `json:"color_id,omitempty"`
	ColorName     string              `json:"color_name,omitempty"`
	Quantity      decimal.Decimal     `json:"quantity"`
	MinStockLevel decimal.Decimal     `json:"min_stock_level"`
	LastUpdated   *time.Time          `json:"last_updated,omitempty"`
	Virtual       bool                `json:"virtual"`
	LowStock      bool                `json:"low_stock"`
}

// InventoryService exposes the merged inventory view over the stock ledger
// and the product catalog
type InventoryService struct {
	stockRepo   inventory.StockLevelRepository
	productRepo catalog.ProductRepository
	colorRepo   catalog.ColorRepository
	logger      *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	stockRepo inventory.StockLevelRepository,
	productRepo catalog.ProductRepository,
	colorRepo catalog.ColorRepository,
	logger *zap.Logger,
) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
		colorRepo:   colorRepo,
		logger:      logger,
	}
}

// List returns one view row per stocked (product, color) pair of every
// active product. Products that have never been stocked yield a single
// virtual row with zero quantity and the default threshold, with the color
// display resolved from the product code when one matches.
func (s *InventoryService) List(ctx context.Context, filter shared.Filter) ([]StockView, error) {
	products, err := s.productRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]StockView, 0, len(products))
	colorNames := make(map[uuid.UUID]string)

	for i := range products {
		product := &products[i]
		levels, err := s.stockRepo.FindByProduct(ctx, product.ID)
		if err != nil {
			return nil, err
		}

		if len(levels) == 0 {
			views = append(views, s.virtualRow(ctx, product))
			continue
		}

		for j := range levels {
			views = append(views, s.persistedRow(ctx, product, &levels[j], colorNames))
		}
	}

	return views, nil
}

// LowStock returns views for persisted rows whose quantity sits in the
// low-stock band. Virtual rows never appear here: a product that was never
// stocked is out of stock, not low.
func (s *InventoryService) LowStock(ctx context.Context, filter shared.Filter) ([]StockView, error) {
	levels, err := s.stockRepo.FindLowStock(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]StockView, 0, len(levels))
	colorNames := make(map[uuid.UUID]string)
	productCache := make(map[uuid.UUID]*catalog.Product)

	for i := range levels {
		level := &levels[i]
		product, ok := productCache[level.ProductID]
		if !ok {
			product, err = s.productRepo.FindByID(ctx, level.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					continue
				}
				return nil, err
			}
			productCache[level.ProductID] = product
		}
		views = append(views, s.persistedRow(ctx, product, level, colorNames))
	}

	return views, nil
}

// UpdateMinStock sets the low-stock threshold on a persisted row. Virtual
// rows have no ID, so an unknown ID simply comes back as NotFound.
func (s *InventoryService) UpdateMinStock(ctx context.Context, id uuid.UUID, minStockLevel decimal.Decimal) (*inventory.StockLevel, error) {
	level, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := level.SetMinStockLevel(minStockLevel); err != nil {
		return nil, err
	}

	if err := s.stockRepo.Save(ctx, level); err != nil {
		return nil, err
	}
	return level, nil
}

func (s *InventoryService) persistedRow(ctx context.Context, product *catalog.Product, level *inventory.StockLevel, colorNames map[uuid.UUID]string) StockView {
	view := StockView{
		ProductID:     level.ProductID,
		ProductName:   product.Name,
		ProductType:   product.Type,
		ColorID:       level.ColorRef(),
		Quantity:      level.Quantity,
		MinStockLevel: level.MinStockLevel,
		Virtual:       false,
		LowStock:      level.IsLowStock(),
	}
	id := level.ID
	view.ID = &id
	lastUpdated := level.LastUpdated
	view.LastUpdated = &lastUpdated

	if level.HasColor() {
		name, ok := colorNames[level.ColorID]
		if !ok {
			if color, err := s.colorRepo.FindByID(ctx, level.ColorID); err == nil {
				name = color.Name
			}
			colorNames[level.ColorID] = name
		}
		view.ColorName = name
	}
	return view
}

func (s *InventoryService) virtualRow(ctx context.Context, product *catalog.Product) StockView {
	view := StockView{
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductType:   product.Type,
		Quantity:      decimal.Zero,
		MinStockLevel: inventory.DefaultMinStockLevel,
		Virtual:       true,
		LowStock:      false,
	}

	if product.Code != "" {
		if color, err := s.colorRepo.FindByCodeName(ctx, product.Code); err == nil {
			id := color.ID
			view.ColorID = &id
			view.ColorName = color.Name
		}
	}
	return view
}
