package catalog

import (
	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// ProductImage is an image attached to a product. Images are managed
// through the product aggregate; mutating an image re-projects its product.
type ProductImage struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(500);not null"`
	AltText   string    `gorm:"type:varchar(200)"`
	IsMain    bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}

// NewProductImage creates a new product image
func NewProductImage(productID uuid.UUID, url, altText string, isMain bool) (*ProductImage, error) {
	if url == "" {
		return nil, shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot be empty")
	}
	return &ProductImage{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		URL:        url,
		AltText:    altText,
		IsMain:     isMain,
	}, nil
}
