package handler

import (
	"github.com/gin-gonic/gin"

	contactsapp "github.com/ovnstore/backend/internal/application/contacts"
	"github.com/ovnstore/backend/internal/interfaces/http/dto"
)

// ContactHandler handles contact message API endpoints
type ContactHandler struct {
	BaseHandler
	contacts *contactsapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contacts *contactsapp.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// RegisterRoutes registers contact routes on the API group
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/contacts")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.POST("/:id/read", h.MarkRead)
	group.DELETE("/:id", h.Delete)
}

// Create submits a contact message
func (h *ContactHandler) Create(c *gin.Context) {
	var req contactsapp.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, contact)
}

// List returns a paginated list of contact messages
func (h *ContactHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	if read := c.Query("is_read"); read != "" {
		filter.Filters["is_read"] = read == "true"
	}

	contacts, total, err := h.contacts.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, contacts, total, filter.Page, filter.PageSize)
}

// GetByID returns a contact message by ID
func (h *ContactHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	contact, err := h.contacts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contact)
}

// MarkRead marks a contact message as read
func (h *ContactHandler) MarkRead(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	contact, err := h.contacts.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contact)
}

// Delete deletes a contact message
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
