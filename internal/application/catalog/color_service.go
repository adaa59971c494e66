package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paintshop/backend/internal/domain/catalog"
	"github.com/paintshop/backend/internal/domain/shared"
)

// ColorService manages the color palette. Code names are the join keys that
// resolve product codes to colors at sale time, so they are immutable after
// creation.
type ColorService struct {
	colorRepo catalog.ColorRepository
	logger    *zap.Logger
}

// NewColorService creates a new ColorService
func NewColorService(colorRepo catalog.ColorRepository, logger *zap.Logger) *ColorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ColorService{colorRepo: colorRepo, logger: logger}
}

// Create creates a new color
func (s *ColorService) Create(ctx context.Context, req CreateColorRequest) (*ColorResponse, error) {
	color, err := catalog.NewColor(req.Name, req.CodeName, req.HexCode)
	if err != nil {
		return nil, err
	}

	if err := s.colorRepo.Save(ctx, color); err != nil {
		return nil, err
	}

	s.logger.Info("color created",
		zap.String("color_id", color.ID.String()),
		zap.String("code_name", color.CodeName),
	)

	response := ToColorResponse(color)
	return &response, nil
}

// Update updates a color's display fields, leaving the code name alone
func (s *ColorService) Update(ctx context.Context, id uuid.UUID, req UpdateColorRequest) (*ColorResponse, error) {
	color, err := s.colorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := color.Update(req.Name, req.HexCode); err != nil {
		return nil, err
	}

	if err := s.colorRepo.Save(ctx, color); err != nil {
		return nil, err
	}

	response := ToColorResponse(color)
	return &response, nil
}

// Delete deactivates the color; historical rows keep their reference
func (s *ColorService) Delete(ctx context.Context, id uuid.UUID) error {
	color, err := s.colorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	color.Deactivate()
	return s.colorRepo.Save(ctx, color)
}

// GetByID returns one color
func (s *ColorService) GetByID(ctx context.Context, id uuid.UUID) (*ColorResponse, error) {
	color, err := s.colorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToColorResponse(color)
	return &response, nil
}

// List returns active colors matching the filter with pagination metadata
func (s *ColorService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ColorResponse], error) {
	colors, err := s.colorRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.colorRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToColorResponses(colors), total, filter.Page, filter.PageSize)
	return &result, nil
}
