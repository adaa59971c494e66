package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/paintshop/backend/internal/domain/shared"
)

var hexCodePattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Color represents a color variant referenced by stock, purchase and sale
// records. A null color reference on those records means "no color variant".
type Color struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(100);not null"`
	// CodeName is the uppercase join key matched against Product.Code.
	CodeName string `gorm:"type:varchar(50);not null;uniqueIndex"`
	HexCode  string `gorm:"type:varchar(7);not null"`
	IsActive bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Color) TableName() string {
	return "colors"
}

// NewColor creates a new color
func NewColor(name, codeName, hexCode string) (*Color, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Color name cannot be empty")
	}
	if strings.TrimSpace(codeName) == "" {
		return nil, shared.NewDomainError("INVALID_CODE_NAME", "Color code name cannot be empty")
	}
	if !hexCodePattern.MatchString(hexCode) {
		return nil, shared.NewDomainError("INVALID_HEX_CODE", "Hex code must be #RGB or #RRGGBB")
	}

	return &Color{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CodeName:          strings.ToUpper(strings.TrimSpace(codeName)),
		HexCode:           hexCode,
		IsActive:          true,
	}, nil
}

// Update updates the color's display fields
func (c *Color) Update(name, hexCode string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Color name cannot be empty")
	}
	if !hexCodePattern.MatchString(hexCode) {
		return shared.NewDomainError("INVALID_HEX_CODE", "Hex code must be #RGB or #RRGGBB")
	}
	c.Name = name
	c.HexCode = hexCode
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the color
func (c *Color) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
