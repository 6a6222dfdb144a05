package contacts

import (
	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeContact = "Contact"

// Event type constants
const (
	EventTypeContactCreated = "ContactCreated"
	EventTypeContactUpdated = "ContactUpdated"
	EventTypeContactDeleted = "ContactDeleted"
)

// ContactCreatedEvent is published when a contact message is submitted
type ContactCreatedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID `json:"contact_id"`
	Email     string    `json:"email"`
}

// NewContactCreatedEvent creates a new ContactCreatedEvent
func NewContactCreatedEvent(contact *Contact) *ContactCreatedEvent {
	return &ContactCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactCreated, AggregateTypeContact, contact.ID, shared.OperationCreate),
		ContactID:       contact.ID,
		Email:           contact.Email,
	}
}

// ContactUpdatedEvent is published when a contact message changes
type ContactUpdatedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID `json:"contact_id"`
	IsRead    bool      `json:"is_read"`
}

// NewContactUpdatedEvent creates a new ContactUpdatedEvent
func NewContactUpdatedEvent(contact *Contact) *ContactUpdatedEvent {
	return &ContactUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactUpdated, AggregateTypeContact, contact.ID, shared.OperationUpdate),
		ContactID:       contact.ID,
		IsRead:          contact.IsRead,
	}
}

// ContactDeletedEvent is published when a contact message is deleted
type ContactDeletedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID `json:"contact_id"`
}

// NewContactDeletedEvent creates a new ContactDeletedEvent
func NewContactDeletedEvent(contact *Contact) *ContactDeletedEvent {
	return &ContactDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactDeleted, AggregateTypeContact, contact.ID, shared.OperationDelete),
		ContactID:       contact.ID,
	}
}
