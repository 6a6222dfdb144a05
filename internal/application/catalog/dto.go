package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest is the request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// UpdateCategoryRequest is the request to update a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

// CategoryResponse is the API representation of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// ToCategoryResponse converts a domain category to its response
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, ToCategoryResponse(&categories[i]))
	}
	return out
}

// CreateProductRequest is the request to create a product
type CreateProductRequest struct {
	Name             string           `json:"name" binding:"required"`
	Slug             string           `json:"slug"`
	SKU              string           `json:"sku"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description"`
	CategoryID       *uuid.UUID       `json:"category_id"`
	Price            decimal.Decimal  `json:"price" binding:"required"`
	ComparePrice     *decimal.Decimal `json:"compare_price"`
	CostPrice        *decimal.Decimal `json:"cost_price"`
	StockQuantity    *int             `json:"stock_quantity"`
	IsFeatured       *bool            `json:"is_featured"`
	MetaTitle        string           `json:"meta_title"`
	MetaDescription  string           `json:"meta_description"`
}

// UpdateProductRequest is the request to update a product
type UpdateProductRequest struct {
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"short_description"`
	CategoryID       *uuid.UUID       `json:"category_id"`
	ClearCategory    bool             `json:"clear_category"`
	Price            *decimal.Decimal `json:"price"`
	ComparePrice     *decimal.Decimal `json:"compare_price"`
	CostPrice        *decimal.Decimal `json:"cost_price"`
	StockQuantity    *int             `json:"stock_quantity"`
	IsFeatured       *bool            `json:"is_featured"`
	IsActive         *bool            `json:"is_active"`
	MetaTitle        *string          `json:"meta_title"`
	MetaDescription  *string          `json:"meta_description"`
}

// FlashSaleRequest puts a product on flash sale
type FlashSaleRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
}

// ProductListFilter narrows product listings
type ProductListFilter struct {
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir"`
	Search      string     `form:"search"`
	CategoryID  *uuid.UUID `form:"category_id"`
	IsActive    *bool      `form:"is_active"`
	IsFeatured  *bool      `form:"is_featured"`
	IsFlashSale *bool      `form:"is_flash_sale"`
	StockStatus string     `form:"stock_status"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Slug               string           `json:"slug"`
	Description        string           `json:"description"`
	ShortDescription   string           `json:"short_description"`
	CategoryID         *uuid.UUID       `json:"category_id"`
	Price              decimal.Decimal  `json:"price"`
	ComparePrice       *decimal.Decimal `json:"compare_price,omitempty"`
	EffectivePrice     decimal.Decimal  `json:"effective_price"`
	DiscountPercentage int              `json:"discount_percentage"`
	SKU                string           `json:"sku"`
	StockQuantity      int              `json:"stock_quantity"`
	StockStatus        string           `json:"stock_status"`
	IsActive           bool             `json:"is_active"`
	IsFeatured         bool             `json:"is_featured"`
	IsFlashSale        bool             `json:"is_flash_sale"`
	FlashSalePrice     *decimal.Decimal `json:"flash_sale_price,omitempty"`
	MetaTitle          string           `json:"meta_title"`
	MetaDescription    string           `json:"meta_description"`
	CreatedAt          string           `json:"created_at"`
	UpdatedAt          string           `json:"updated_at"`
}

// ToProductResponse converts a domain product to its response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		Description:        p.Description,
		ShortDescription:   p.ShortDescription,
		CategoryID:         p.CategoryID,
		Price:              p.Price,
		ComparePrice:       p.ComparePrice,
		EffectivePrice:     p.EffectivePrice(),
		DiscountPercentage: p.DiscountPercentage(),
		SKU:                p.SKU,
		StockQuantity:      p.StockQuantity,
		StockStatus:        string(p.StockStatus),
		IsActive:           p.IsActive,
		IsFeatured:         p.IsFeatured,
		IsFlashSale:        p.IsFlashSale,
		FlashSalePrice:     p.FlashSalePrice,
		MetaTitle:          p.MetaTitle,
		MetaDescription:    p.MetaDescription,
		CreatedAt:          p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}

// AddImageRequest attaches an image to a product
type AddImageRequest struct {
	URL     string `json:"url" binding:"required"`
	AltText string `json:"alt_text"`
	IsMain  bool   `json:"is_main"`
}

// ImageResponse is the API representation of a product image
type ImageResponse struct {
	ID      uuid.UUID `json:"id"`
	URL     string    `json:"url"`
	AltText string    `json:"alt_text"`
	IsMain  bool      `json:"is_main"`
}

// ToImageResponse converts a domain image to its response
func ToImageResponse(img *catalog.ProductImage) ImageResponse {
	return ImageResponse{
		ID:      img.ID,
		URL:     img.URL,
		AltText: img.AltText,
		IsMain:  img.IsMain,
	}
}

// ToImageResponses converts a slice of images
func ToImageResponses(images []catalog.ProductImage) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for i := range images {
		out = append(out, ToImageResponse(&images[i]))
	}
	return out
}

// CreateReviewRequest submits a review for a product
type CreateReviewRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	AuthorName  string    `json:"author_name" binding:"required"`
	AuthorEmail string    `json:"author_email" binding:"required"`
	Rating      int       `json:"rating" binding:"required"`
	Title       string    `json:"title"`
	Comment     string    `json:"comment" binding:"required"`
}

// RespondReviewRequest records an admin reply to a review
type RespondReviewRequest struct {
	Response string `json:"response" binding:"required"`
}

// ReviewResponse is the API representation of a review
type ReviewResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	AuthorName         string    `json:"author_name"`
	Rating             int       `json:"rating"`
	Title              string    `json:"title"`
	Comment            string    `json:"comment"`
	Status             string    `json:"status"`
	AdminResponse      string    `json:"admin_response,omitempty"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	HelpfulCount       int       `json:"helpful_count"`
	CreatedAt          string    `json:"created_at"`
}

// ToReviewResponse converts a domain review to its response
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:                 r.ID,
		ProductID:          r.ProductID,
		AuthorName:         r.AuthorName,
		Rating:             r.Rating,
		Title:              r.Title,
		Comment:            r.Comment,
		Status:             string(r.Status),
		AdminResponse:      r.AdminResponse,
		IsVerifiedPurchase: r.IsVerifiedPurchase,
		HelpfulCount:       r.HelpfulCount,
		CreatedAt:          r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToReviewResponses converts a slice of reviews
func ToReviewResponses(reviews []catalog.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, ToReviewResponse(&reviews[i]))
	}
	return out
}
