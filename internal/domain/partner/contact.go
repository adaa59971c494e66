package partner

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paintshop/backend/internal/domain/shared"
)

// ContactType classifies an address-book entry
type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypeSupplier ContactType = "supplier"
	ContactTypeOther    ContactType = "other"
)

// IsValid returns true if the contact type is valid
func (t ContactType) IsValid() bool {
	switch t {
	case ContactTypeCustomer, ContactTypeSupplier, ContactTypeOther:
		return true
	}
	return false
}

// Contact is a plain address-book record. The vendor ledger keys on free
// text vendor names, not on contacts.
type Contact struct {
	shared.OwnedAggregateRoot
	Name    string      `gorm:"type:varchar(200);not null"`
	Phone   string      `gorm:"type:varchar(50)"`
	Address string      `gorm:"type:text"`
	Type    ContactType `gorm:"type:varchar(20);not null;default:'other'"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new contact
func NewContact(name, phone, address string, contactType ContactType, createdBy uuid.UUID) (*Contact, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}
	if !contactType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown contact type")
	}

	return &Contact{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy),
		Name:               name,
		Phone:              phone,
		Address:            address,
		Type:               contactType,
	}, nil
}

// Update updates the contact's fields
func (c *Contact) Update(name, phone, address string, contactType ContactType) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}
	if !contactType.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Unknown contact type")
	}
	c.Name = name
	c.Phone = phone
	c.Address = address
	c.Type = contactType
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Contact, error)
	Save(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
