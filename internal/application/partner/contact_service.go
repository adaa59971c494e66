package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paintshop/backend/internal/domain/partner"
	"github.com/paintshop/backend/internal/domain/shared"
)

// CreateContactRequest represents a request to create a contact
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=2000"`
	Type    string `json:"type" binding:"required,oneof=customer supplier other"`
}

// UpdateContactRequest represents a request to update a contact
type UpdateContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=2000"`
	Type    string `json:"type" binding:"required,oneof=customer supplier other"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ToContactResponse converts a domain Contact
func ToContactResponse(c *partner.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt,
	}
}

// ToContactResponses converts a slice of domain Contacts
func ToContactResponses(contacts []partner.Contact) []ContactResponse {
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses
}

// ContactService manages the address book
type ContactService struct {
	contactRepo partner.ContactRepository
	logger      *zap.Logger
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo partner.ContactRepository, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{contactRepo: contactRepo, logger: logger}
}

// Create creates a new contact
func (s *ContactService) Create(ctx context.Context, req CreateContactRequest, actor uuid.UUID) (*ContactResponse, error) {
	contact, err := partner.NewContact(req.Name, req.Phone, req.Address, partner.ContactType(req.Type), actor)
	if err != nil {
		return nil, err
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Update updates an existing contact
func (s *ContactService) Update(ctx context.Context, id uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := contact.Update(req.Name, req.Phone, req.Address, partner.ContactType(req.Type)); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Delete removes a contact
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.contactRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.contactRepo.Delete(ctx, id)
}

// GetByID returns one contact
func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToContactResponse(contact)
	return &response, nil
}

// List returns contacts matching the filter with pagination metadata
func (s *ContactService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ContactResponse], error) {
	contacts, err := s.contactRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.contactRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToContactResponses(contacts), total, filter.Page, filter.PageSize)
	return &result, nil
}
