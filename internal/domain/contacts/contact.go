package contacts

import (
	"time"

	"github.com/ovnstore/backend/internal/domain/shared"
)

// Contact is a message submitted through the storefront contact form
type Contact struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(100);not null"`
	Email   string `gorm:"type:varchar(200);not null"`
	Phone   string `gorm:"type:varchar(30)"`
	Subject string `gorm:"type:varchar(200)"`
	Message string `gorm:"type:text;not null"`
	IsRead  bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new contact message
func NewContact(name, email, phone, subject, message string) (*Contact, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot be empty")
	}

	contact := &Contact{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Subject:           subject,
		Message:           message,
	}

	contact.AddDomainEvent(NewContactCreatedEvent(contact))

	return contact, nil
}

// MarkRead flags the message as handled by staff
func (c *Contact) MarkRead() {
	if c.IsRead {
		return
	}
	c.IsRead = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContactUpdatedEvent(c))
}
