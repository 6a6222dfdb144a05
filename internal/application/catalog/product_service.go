package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product business operations
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	images     catalog.ProductImageRepository
	reviews    catalog.ReviewRepository
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	images catalog.ProductImageRepository,
	reviews catalog.ReviewRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		images:     images,
		reviews:    reviews,
		publisher:  publisher,
		logger:     logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	var category *catalog.Category
	if req.CategoryID != nil {
		var err error
		category, err = s.categories.FindByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	slug, err := s.uniqueSlug(ctx, req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	sku := req.SKU
	if sku == "" {
		categoryName := ""
		if category != nil {
			categoryName = category.Name
		}
		sku = catalog.GenerateSKU(req.Name, categoryName)
	}
	exists, err := s.products.ExistsBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.Name, slug, sku, req.Description, req.Price)
	if err != nil {
		return nil, err
	}

	if req.ShortDescription != "" {
		if err := product.Update(req.Name, req.Description, req.ShortDescription); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		product.SetCategory(req.CategoryID)
	}
	if req.ComparePrice != nil || req.CostPrice != nil {
		if err := product.SetPrices(req.Price, req.ComparePrice, req.CostPrice); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity != nil {
		if err := product.SetStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.IsFeatured != nil {
		product.SetFeatured(*req.IsFeatured)
	}
	if req.MetaTitle != "" || req.MetaDescription != "" {
		product.SetMeta(req.MetaTitle, req.MetaDescription)
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, &product.BaseAggregateRoot)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug retrieves a product by slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}
	if filter.IsFeatured != nil {
		domainFilter.Filters["is_featured"] = *filter.IsFeatured
	}
	if filter.IsFlashSale != nil {
		domainFilter.Filters["is_flash_sale"] = *filter.IsFlashSale
	}
	if filter.StockStatus != "" {
		domainFilter.Filters["stock_status"] = filter.StockStatus
	}

	products, err := s.products.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	shortDescription := product.ShortDescription
	if req.ShortDescription != nil {
		shortDescription = *req.ShortDescription
	}
	if err := product.Update(name, description, shortDescription); err != nil {
		return nil, err
	}

	if req.ClearCategory {
		product.SetCategory(nil)
	} else if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	if req.Price != nil || req.ComparePrice != nil || req.CostPrice != nil {
		price := product.Price
		if req.Price != nil {
			price = *req.Price
		}
		comparePrice := product.ComparePrice
		if req.ComparePrice != nil {
			comparePrice = req.ComparePrice
		}
		costPrice := product.CostPrice
		if req.CostPrice != nil {
			costPrice = req.CostPrice
		}
		if err := product.SetPrices(price, comparePrice, costPrice); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity != nil {
		if err := product.SetStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.IsFeatured != nil {
		product.SetFeatured(*req.IsFeatured)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			_ = product.Activate()
		} else {
			_ = product.Deactivate()
		}
	}
	if req.MetaTitle != nil || req.MetaDescription != nil {
		title := product.MetaTitle
		if req.MetaTitle != nil {
			title = *req.MetaTitle
		}
		metaDescription := product.MetaDescription
		if req.MetaDescription != nil {
			metaDescription = *req.MetaDescription
		}
		product.SetMeta(title, metaDescription)
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, &product.BaseAggregateRoot)

	response := ToProductResponse(product)
	return &response, nil
}

// StartFlashSale puts a product on flash sale
func (s *ProductService) StartFlashSale(ctx context.Context, id uuid.UUID, req FlashSaleRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.StartFlashSale(req.Price); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, &product.BaseAggregateRoot)

	response := ToProductResponse(product)
	return &response, nil
}

// EndFlashSale takes a product off flash sale
func (s *ProductService) EndFlashSale(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.EndFlashSale()
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, &product.BaseAggregateRoot)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product together with its images and reviews
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Reviews cascade with the product; emit their deletions so the
	// document projections follow.
	reviews, err := s.reviews.FindByProduct(ctx, id, shared.Filter{Page: 1, PageSize: 1000})
	if err != nil {
		return err
	}
	if err := s.reviews.DeleteByProduct(ctx, id); err != nil {
		return err
	}
	if err := s.images.DeleteByProduct(ctx, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	for i := range reviews {
		s.publish(ctx, catalog.NewReviewDeletedEvent(&reviews[i]))
	}
	s.publish(ctx, catalog.NewProductDeletedEvent(product))
	return nil
}

// AddImage attaches an image to a product
func (s *ProductService) AddImage(ctx context.Context, productID uuid.UUID, req AddImageRequest) (*ImageResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	image, err := catalog.NewProductImage(productID, req.URL, req.AltText, req.IsMain)
	if err != nil {
		return nil, err
	}
	if req.IsMain {
		if err := s.images.DemoteMain(ctx, productID); err != nil {
			return nil, err
		}
	}
	if err := s.images.Save(ctx, image); err != nil {
		return nil, err
	}

	// The image set is embedded in the product document
	s.publish(ctx, catalog.NewProductUpdatedEvent(product))

	response := ToImageResponse(image)
	return &response, nil
}

// ListImages lists a product's images, main image first
func (s *ProductService) ListImages(ctx context.Context, productID uuid.UUID) ([]ImageResponse, error) {
	images, err := s.images.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToImageResponses(images), nil
}

// SetMainImage marks one of the product's images as main
func (s *ProductService) SetMainImage(ctx context.Context, productID, imageID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	image, err := s.images.FindByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image.ProductID != productID {
		return shared.NewDomainError("INVALID_IMAGE", "Image does not belong to this product")
	}

	if err := s.images.DemoteMain(ctx, productID); err != nil {
		return err
	}
	image.IsMain = true
	if err := s.images.Save(ctx, image); err != nil {
		return err
	}

	s.publish(ctx, catalog.NewProductUpdatedEvent(product))
	return nil
}

// DeleteImage detaches an image from a product
func (s *ProductService) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	image, err := s.images.FindByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image.ProductID != productID {
		return shared.NewDomainError("INVALID_IMAGE", "Image does not belong to this product")
	}

	if err := s.images.Delete(ctx, imageID); err != nil {
		return err
	}

	s.publish(ctx, catalog.NewProductUpdatedEvent(product))
	return nil
}

// uniqueSlug derives a slug not yet taken by another product
func (s *ProductService) uniqueSlug(ctx context.Context, name, requested string) (string, error) {
	base := requested
	if base == "" {
		base = catalog.Slugify(name)
	}
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := catalog.NextSlug(base, attempt)
		exists, err := s.products.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("SLUG_EXHAUSTED", "Could not derive a unique slug")
}

func (s *ProductService) publishEvents(ctx context.Context, root *shared.BaseAggregateRoot) {
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish product events", zap.Error(err))
	}
	root.ClearDomainEvents()
}

func (s *ProductService) publish(ctx context.Context, event shared.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish product event",
			zap.String("event_type", event.EventType()), zap.Error(err))
	}
}
