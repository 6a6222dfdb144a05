package sync

import (
	"math"
	"time"

	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/contacts"
	"github.com/ovnstore/backend/internal/domain/orders"
	"github.com/shopspring/decimal"
)

// FallbackCategoryName is published on a product document when its category
// is missing or unresolved. The projection degrades instead of failing.
const FallbackCategoryName = "General"

// timestamp formats an entity timestamp for the document store.
// All document timestamps are UTC RFC3339 so transforms stay deterministic
// regardless of the server's locale.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func optionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := timestamp(*t)
	return &s
}

func money(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func optionalMoney(d *decimal.Decimal) float64 {
	if d == nil {
		return 0
	}
	return money(*d)
}

// roundRating rounds an average rating to one decimal place, matching the
// precision shown on the storefront.
func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// TransformCategory maps a category to its document projection
func TransformCategory(c *catalog.Category) CategoryDocument {
	return CategoryDocument{
		SourceID:    c.ID.String(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.ImageURL,
		IsActive:    c.IsActive,
		CreatedAt:   timestamp(c.CreatedAt),
		UpdatedAt:   timestamp(c.UpdatedAt),
	}
}

// TransformProduct maps a product and its related records to a document.
// category may be nil when the product has no category or the lookup failed;
// the document then carries the fallback category name and a null category id.
// images may be empty. stats covers approved reviews only.
func TransformProduct(p *catalog.Product, category *catalog.Category, images []catalog.ProductImage, stats catalog.ReviewStats) ProductDocument {
	doc := ProductDocument{
		SourceID:         p.ID.String(),
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		CategoryName:     FallbackCategoryName,
		Price:            money(p.Price),
		ComparePrice:     optionalMoney(p.ComparePrice),
		CostPrice:        optionalMoney(p.CostPrice),
		SKU:              p.SKU,
		StockQuantity:    p.StockQuantity,
		StockStatus:      string(p.StockStatus),
		IsActive:         p.IsActive,
		IsFeatured:       p.IsFeatured,
		IsFlashSale:      p.IsFlashSale,
		Images:           make([]ImageDocument, 0, len(images)),
		AvgRating:        roundRating(stats.AverageRating),
		ReviewCount:      stats.ReviewCount,
		CreatedAt:        timestamp(p.CreatedAt),
		UpdatedAt:        timestamp(p.UpdatedAt),
	}

	if category != nil {
		id := category.ID.String()
		doc.CategoryID = &id
		doc.CategoryName = category.Name
	}

	if p.IsFlashSale && p.FlashSalePrice != nil {
		price := money(*p.FlashSalePrice)
		doc.FlashSalePrice = &price
	}

	for _, img := range images {
		doc.Images = append(doc.Images, ImageDocument{
			URL:     img.URL,
			AltText: img.AltText,
			IsMain:  img.IsMain,
		})
		if img.IsMain && doc.MainImage == "" {
			doc.MainImage = img.URL
		}
	}
	if doc.MainImage == "" && len(images) > 0 {
		doc.MainImage = images[0].URL
	}

	return doc
}

// TransformOrder maps an order with its items to a document
func TransformOrder(o *orders.Order) OrderDocument {
	doc := OrderDocument{
		SourceID:             o.ID.String(),
		OrderNumber:          o.OrderNumber,
		CustomerEmail:        o.CustomerEmail,
		IsGuestOrder:         o.IsGuestOrder,
		Status:               string(o.Status),
		PaymentStatus:        string(o.PaymentStatus),
		PaymentMethod:        o.PaymentMethod,
		PaymentTransactionID: o.PaymentTransactionID,
		Subtotal:             money(o.Subtotal),
		TaxAmount:            money(o.TaxAmount),
		ShippingCost:         money(o.ShippingCost),
		DiscountAmount:       money(o.DiscountAmount),
		TotalAmount:          money(o.TotalAmount),
		ShippingAddress:      o.ShippingAddress,
		BillingAddress:       o.BillingAddress,
		ShippingMethod:       o.ShippingMethod,
		TrackingNumber:       o.TrackingNumber,
		Notes:                o.Notes,
		Items:                make([]OrderItemDocument, 0, len(o.Items)),
		ShippedAt:            optionalTimestamp(o.ShippedAt),
		DeliveredAt:          optionalTimestamp(o.DeliveredAt),
		CreatedAt:            timestamp(o.CreatedAt),
		UpdatedAt:            timestamp(o.UpdatedAt),
	}

	for _, item := range o.Items {
		doc.Items = append(doc.Items, OrderItemDocument{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Quantity:    item.Quantity,
			UnitPrice:   money(item.UnitPrice),
			TotalPrice:  money(item.TotalPrice),
		})
	}

	return doc
}

// TransformReview maps a review to a document. productName may be empty when
// the product lookup failed; the document still carries the product id.
func TransformReview(r *catalog.Review, productName string) ReviewDocument {
	return ReviewDocument{
		SourceID:           r.ID.String(),
		ProductID:          r.ProductID.String(),
		ProductName:        productName,
		AuthorName:         r.AuthorName,
		AuthorEmail:        r.AuthorEmail,
		Rating:             r.Rating,
		Title:              r.Title,
		Comment:            r.Comment,
		Status:             string(r.Status),
		IsVerifiedPurchase: r.IsVerifiedPurchase,
		CreatedAt:          timestamp(r.CreatedAt),
		UpdatedAt:          timestamp(r.UpdatedAt),
	}
}

// TransformContact maps a contact message to a document
func TransformContact(c *contacts.Contact) ContactDocument {
	return ContactDocument{
		SourceID:  c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		IsRead:    c.IsRead,
		CreatedAt: timestamp(c.CreatedAt),
		UpdatedAt: timestamp(c.UpdatedAt),
	}
}
