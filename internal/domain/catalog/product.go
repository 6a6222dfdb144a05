package catalog

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockStatus represents the availability of a product
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// DefaultLowStockThreshold is applied when a product does not set its own
const DefaultLowStockThreshold = 10

// Product represents a storefront product
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	Name              string          `gorm:"type:varchar(200);not null"`
	Slug              string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description       string          `gorm:"type:text"`
	ShortDescription  string          `gorm:"type:varchar(500)"`
	CategoryID        *uuid.UUID      `gorm:"type:uuid;index"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ComparePrice      *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CostPrice         *decimal.Decimal `gorm:"type:decimal(10,2)"`
	SKU               string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	StockQuantity     int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:10"`
	StockStatus       StockStatus     `gorm:"type:varchar(15);not null;default:'in_stock'"`
	IsActive          bool            `gorm:"not null;default:true"`
	IsFeatured        bool            `gorm:"not null;default:false"`
	IsFlashSale       bool            `gorm:"not null;default:false"`
	FlashSalePrice    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	MetaTitle         string          `gorm:"type:varchar(160)"`
	MetaDescription   string          `gorm:"type:varchar(320)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product. Empty slug and SKU are generated from
// the name; a caller that needs uniqueness against the store must check via
// the repository and retry with NextSlug.
func NewProduct(name, slug, sku, description string, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Product slug cannot be empty")
	}
	if sku == "" {
		sku = GenerateSKU(name, "")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Description:       description,
		Price:             price,
		SKU:               strings.ToUpper(sku),
		LowStockThreshold: DefaultLowStockThreshold,
		StockStatus:       StockStatusOutOfStock,
		IsActive:          true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, description, shortDescription string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.ShortDescription = shortDescription
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetCategory assigns the product to a category; nil clears the assignment
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetPrices sets selling, compare-at, and cost prices
func (p *Product) SetPrices(price decimal.Decimal, comparePrice, costPrice *decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if comparePrice != nil && comparePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Compare price cannot be negative")
	}
	if costPrice != nil && costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}

	p.Price = price
	p.ComparePrice = comparePrice
	p.CostPrice = costPrice
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetStock sets the stock quantity and derives the stock status
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	p.StockQuantity = quantity
	p.StockStatus = deriveStockStatus(quantity, p.LowStockThreshold)
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetLowStockThreshold sets the threshold below which stock is flagged low
func (p *Product) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}

	p.LowStockThreshold = threshold
	p.StockStatus = deriveStockStatus(p.StockQuantity, threshold)
	p.touch()

	return nil
}

// StartFlashSale puts the product on flash sale at the given price
func (p *Product) StartFlashSale(price decimal.Decimal) error {
	if price.IsNegative() || price.GreaterThan(p.Price) {
		return shared.NewDomainError("INVALID_FLASH_PRICE", "Flash sale price must be between zero and the regular price")
	}

	p.IsFlashSale = true
	p.FlashSalePrice = &price
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// EndFlashSale removes the product from flash sale
func (p *Product) EndFlashSale() {
	p.IsFlashSale = false
	p.FlashSalePrice = nil
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetFeatured toggles the featured flag
func (p *Product) SetFeatured(featured bool) {
	p.IsFeatured = featured
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetMeta sets SEO metadata
func (p *Product) SetMeta(title, description string) {
	p.MetaTitle = title
	p.MetaDescription = description
	p.touch()
}

// Activate makes the product visible in the storefront
func (p *Product) Activate() error {
	if p.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.IsActive = true
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.IsActive = false
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// DiscountPercentage returns the percentage discount against the compare
// price, rounded to a whole number. Returns 0 when no discount applies.
func (p *Product) DiscountPercentage() int {
	if p.ComparePrice == nil || !p.ComparePrice.GreaterThan(p.Price) || p.ComparePrice.IsZero() {
		return 0
	}
	diff := p.ComparePrice.Sub(p.Price)
	pct := diff.Div(*p.ComparePrice).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// EffectivePrice returns the flash sale price when active, otherwise the
// regular price
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.IsFlashSale && p.FlashSalePrice != nil {
		return *p.FlashSalePrice
	}
	return p.Price
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func deriveStockStatus(quantity, threshold int) StockStatus {
	switch {
	case quantity <= 0:
		return StockStatusOutOfStock
	case quantity <= threshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// GenerateSKU builds a SKU candidate from the product and category names:
// three letters of the name, two of the category, four random digits.
func GenerateSKU(name, categoryName string) string {
	namePart := letterPrefix(name, 3, 'X')
	catPart := letterPrefix(categoryName, 2, 'X')
	digits := make([]byte, 4)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return namePart + catPart + string(digits)
}

func letterPrefix(s string, n int, pad byte) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == n {
				break
			}
		}
	}
	out := b.String()
	for len(out) < n {
		out += string(pad)
	}
	return out
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
