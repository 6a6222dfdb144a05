package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/ovnstore/backend/internal/application/catalog"
)

// ProductHandler handles product API endpoints, including the image
// sub-resource and flash sale controls
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes registers product routes on the API group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/products")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.GetByID)
	group.GET("/slug/:slug", h.GetBySlug)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.POST("/:id/flash-sale", h.StartFlashSale)
	group.DELETE("/:id/flash-sale", h.EndFlashSale)
	group.POST("/:id/images", h.AddImage)
	group.GET("/:id/images", h.ListImages)
	group.PUT("/:id/images/:imageId/main", h.SetMainImage)
	group.DELETE("/:id/images/:imageId", h.DeleteImage)
}

// Create creates a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// List returns a paginated list of products
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, total, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// GetByID returns a product by ID
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// GetBySlug returns a product by slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Update updates a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete deletes a product and its images and reviews
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// StartFlashSale puts a product on flash sale
func (h *ProductHandler) StartFlashSale(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.FlashSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.StartFlashSale(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// EndFlashSale takes a product off flash sale
func (h *ProductHandler) EndFlashSale(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.products.EndFlashSale(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// AddImage attaches an image to a product
func (h *ProductHandler) AddImage(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	image, err := h.products.AddImage(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, image)
}

// ListImages returns a product's images, main image first
func (h *ProductHandler) ListImages(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	images, err := h.products.ListImages(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, images)
}

// SetMainImage promotes an image to the product's main image
func (h *ProductHandler) SetMainImage(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	imageID, ok := h.parseParamID(c, "imageId")
	if !ok {
		return
	}

	if err := h.products.SetMainImage(c.Request.Context(), id, imageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteImage removes an image from a product
func (h *ProductHandler) DeleteImage(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	imageID, ok := h.parseParamID(c, "imageId")
	if !ok {
		return
	}

	if err := h.products.DeleteImage(c.Request.Context(), id, imageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
