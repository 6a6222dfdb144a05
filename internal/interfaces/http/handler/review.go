package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/ovnstore/backend/internal/application/catalog"
	"github.com/ovnstore/backend/internal/interfaces/http/dto"
)

// ReviewHandler handles review API endpoints
type ReviewHandler struct {
	BaseHandler
	reviews *catalogapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews *catalogapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// RegisterRoutes registers review routes on the API group
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/reviews")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.POST("/:id/approve", h.Approve)
	group.POST("/:id/reject", h.Reject)
	group.POST("/:id/respond", h.Respond)
	group.POST("/:id/helpful", h.MarkHelpful)
	group.DELETE("/:id", h.Delete)

	rg.GET("/products/:id/reviews", h.ListByProduct)
}

// Create submits a new review; it stays pending until moderated
func (h *ReviewHandler) Create(c *gin.Context) {
	var req catalogapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, review)
}

// List returns a paginated list of reviews across all products
func (h *ReviewHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if rating := c.Query("rating"); rating != "" {
		filter.Filters["rating"] = rating
	}

	reviews, total, err := h.reviews.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, reviews, total, filter.Page, filter.PageSize)
}

// ListByProduct returns a product's reviews, approved only by default
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	reviews, err := h.reviews.ListByProduct(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reviews)
}

// GetByID returns a review by ID
func (h *ReviewHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	review, err := h.reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, review)
}

// Approve approves a pending review
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	review, err := h.reviews.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, review)
}

// Reject rejects a pending review
func (h *ReviewHandler) Reject(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	review, err := h.reviews.Reject(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, review)
}

// Respond records a store response on a review
func (h *ReviewHandler) Respond(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.RespondReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviews.Respond(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, review)
}

// MarkHelpful increments a review's helpful counter
func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	review, err := h.reviews.MarkHelpful(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, review)
}

// Delete deletes a review
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
