package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appjournal "github.com/paintshop/backend/internal/application/journal"
	"github.com/paintshop/backend/internal/domain/catalog"
	"github.com/paintshop/backend/internal/domain/shared"
)

// ProductService manages the product catalog. Deleting a product is a soft
// deactivation that also purges its stock rows and purchase history in one
// transaction, so the depletion walk never meets lots of a dead product.
type ProductService struct {
	productRepo catalog.ProductRepository
	txScope     appjournal.TransactionScope
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, txScope appjournal.TransactionScope, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{productRepo: productRepo, txScope: txScope, logger: logger}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, actor uuid.UUID) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, catalog.ProductType(req.Type), actor)
	if err != nil {
		return nil, err
	}

	if req.Code != "" {
		product.SetCode(req.Code)
	}
	if req.PurchasePrice != nil || req.SalePrice != nil {
		purchasePrice := product.PurchasePrice
		salePrice := product.SalePrice
		if req.PurchasePrice != nil {
			purchasePrice = *req.PurchasePrice
		}
		if req.SalePrice != nil {
			salePrice = *req.SalePrice
		}
		if err := product.SetPrices(purchasePrice, salePrice); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := product.SetDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// Update updates an existing product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := *req.Name
		if name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
		}
		product.Name = name
	}
	if req.Type != nil {
		productType := catalog.ProductType(*req.Type)
		if !productType.IsValid() {
			return nil, shared.NewDomainError("INVALID_TYPE", "Unknown product type")
		}
		product.Type = productType
	}
	if req.Code != nil {
		product.SetCode(*req.Code)
	}
	if req.PurchasePrice != nil || req.SalePrice != nil {
		purchasePrice := product.PurchasePrice
		salePrice := product.SalePrice
		if req.PurchasePrice != nil {
			purchasePrice = *req.PurchasePrice
		}
		if req.SalePrice != nil {
			salePrice = *req.SalePrice
		}
		if err := product.SetPrices(purchasePrice, salePrice); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := product.SetDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deactivates the product and purges its stock rows and purchase
// history together.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.txScope.Execute(ctx, func(repos appjournal.TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}

		product.Deactivate()
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}

		if err := repos.Stock().DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return repos.Purchases().DeleteByProduct(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product deactivated", zap.String("product_id", id.String()))
	return nil
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns active products matching the filter with pagination metadata
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize)
	return &result, nil
}
