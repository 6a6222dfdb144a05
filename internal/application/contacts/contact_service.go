package contacts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/contacts"
	"github.com/ovnstore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateContactRequest submits a contact form message
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// ContactResponse is the API representation of a contact message
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt string    `json:"created_at"`
}

// ToContactResponse converts a domain contact to its response
func ToContactResponse(c *contacts.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		IsRead:    c.IsRead,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToContactResponses converts a slice of contacts
func ToContactResponses(list []contacts.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(list))
	for i := range list {
		out = append(out, ToContactResponse(&list[i]))
	}
	return out
}

// ContactService handles contact form messages
type ContactService struct {
	contacts  contacts.ContactRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo contacts.ContactRepository, publisher shared.EventPublisher, logger *zap.Logger) *ContactService {
	return &ContactService{
		contacts:  contactRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create stores a submitted contact message
func (s *ContactService) Create(ctx context.Context, req CreateContactRequest) (*ContactResponse, error) {
	contact, err := contacts.NewContact(req.Name, req.Email, req.Phone, req.Subject, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.contacts.Save(ctx, contact); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, contact)

	response := ToContactResponse(contact)
	return &response, nil
}

// GetByID retrieves a contact message by ID
func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToContactResponse(contact)
	return &response, nil
}

// List retrieves contact messages with pagination
func (s *ContactService) List(ctx context.Context, filter shared.Filter) ([]ContactResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	list, err := s.contacts.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.contacts.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToContactResponses(list), total, nil
}

// MarkRead flags a contact message as handled
func (s *ContactService) MarkRead(ctx context.Context, id uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contact.MarkRead()
	if err := s.contacts.Save(ctx, contact); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, contact)

	response := ToContactResponse(contact)
	return &response, nil
}

// Delete removes a contact message
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.contacts.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, contacts.NewContactDeletedEvent(contact)); err != nil {
		s.logger.Error("failed to publish contact event", zap.Error(err))
	}
	return nil
}

func (s *ContactService) publishEvents(ctx context.Context, contact *contacts.Contact) {
	events := contact.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish contact events", zap.Error(err))
	}
	contact.ClearDomainEvents()
}
