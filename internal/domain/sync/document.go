package sync

// Collection names in the secondary store
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionOrders     = "orders"
	CollectionReviews    = "reviews"
	CollectionContacts   = "contacts"
)

// Collections lists every projected collection in resync order.
// Categories are projected before products so category lookups during a
// fresh read hit populated data.
var Collections = []string{
	CollectionCategories,
	CollectionProducts,
	CollectionOrders,
	CollectionReviews,
	CollectionContacts,
}

// KeyField is the document field holding the primary record's identifier.
// Every projection is keyed by it; upserts replace on it.
const KeyField = "source_id"

// CategoryDocument is the denormalized projection of a category
type CategoryDocument struct {
	SourceID    string `bson:"source_id" json:"source_id"`
	Name        string `bson:"name" json:"name"`
	Slug        string `bson:"slug" json:"slug"`
	Description string `bson:"description" json:"description"`
	Image       string `bson:"image" json:"image"`
	IsActive    bool   `bson:"is_active" json:"is_active"`
	CreatedAt   string `bson:"created_at" json:"created_at"`
	UpdatedAt   string `bson:"updated_at" json:"updated_at"`
}

// ImageDocument is one image embedded in a product projection
type ImageDocument struct {
	URL     string `bson:"url" json:"url"`
	AltText string `bson:"alt_text" json:"alt_text"`
	IsMain  bool   `bson:"is_main" json:"is_main"`
}

// ProductDocument is the denormalized projection of a product merged with
// its images, category name, and published review rating
type ProductDocument struct {
	SourceID         string          `bson:"source_id" json:"source_id"`
	Name             string          `bson:"name" json:"name"`
	Slug             string          `bson:"slug" json:"slug"`
	Description      string          `bson:"description" json:"description"`
	ShortDescription string          `bson:"short_description" json:"short_description"`
	CategoryID       *string         `bson:"category_id" json:"category_id"`
	CategoryName     string          `bson:"category_name" json:"category_name"`
	Price            float64         `bson:"price" json:"price"`
	ComparePrice     float64         `bson:"compare_price" json:"compare_price"`
	CostPrice        float64         `bson:"cost_price" json:"cost_price"`
	SKU              string          `bson:"sku" json:"sku"`
	StockQuantity    int             `bson:"stock_quantity" json:"stock_quantity"`
	StockStatus      string          `bson:"stock_status" json:"stock_status"`
	IsActive         bool            `bson:"is_active" json:"is_active"`
	IsFeatured       bool            `bson:"is_featured" json:"is_featured"`
	IsFlashSale      bool            `bson:"is_flash_sale" json:"is_flash_sale"`
	FlashSalePrice   *float64        `bson:"flash_sale_price" json:"flash_sale_price"`
	MainImage        string          `bson:"main_image" json:"main_image"`
	Images           []ImageDocument `bson:"images" json:"images"`
	AvgRating        float64         `bson:"avg_rating" json:"avg_rating"`
	ReviewCount      int64           `bson:"review_count" json:"review_count"`
	CreatedAt        string          `bson:"created_at" json:"created_at"`
	UpdatedAt        string          `bson:"updated_at" json:"updated_at"`
}

// OrderItemDocument is one line embedded in an order projection
type OrderItemDocument struct {
	ProductID   string  `bson:"product_id" json:"product_id"`
	ProductName string  `bson:"product_name" json:"product_name"`
	ProductSKU  string  `bson:"product_sku" json:"product_sku"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
	TotalPrice  float64 `bson:"total_price" json:"total_price"`
}

// OrderDocument is the denormalized projection of an order with its items
type OrderDocument struct {
	SourceID             string              `bson:"source_id" json:"source_id"`
	OrderNumber          string              `bson:"order_number" json:"order_number"`
	CustomerEmail        string              `bson:"customer_email" json:"customer_email"`
	IsGuestOrder         bool                `bson:"is_guest_order" json:"is_guest_order"`
	Status               string              `bson:"status" json:"status"`
	PaymentStatus        string              `bson:"payment_status" json:"payment_status"`
	PaymentMethod        string              `bson:"payment_method" json:"payment_method"`
	PaymentTransactionID string              `bson:"payment_transaction_id" json:"payment_transaction_id"`
	Subtotal             float64             `bson:"subtotal" json:"subtotal"`
	TaxAmount            float64             `bson:"tax_amount" json:"tax_amount"`
	ShippingCost         float64             `bson:"shipping_cost" json:"shipping_cost"`
	DiscountAmount       float64             `bson:"discount_amount" json:"discount_amount"`
	TotalAmount          float64             `bson:"total_amount" json:"total_amount"`
	ShippingAddress      string              `bson:"shipping_address" json:"shipping_address"`
	BillingAddress       string              `bson:"billing_address" json:"billing_address"`
	ShippingMethod       string              `bson:"shipping_method" json:"shipping_method"`
	TrackingNumber       string              `bson:"tracking_number" json:"tracking_number"`
	Notes                string              `bson:"notes" json:"notes"`
	Items                []OrderItemDocument `bson:"items" json:"items"`
	ShippedAt            *string             `bson:"shipped_at" json:"shipped_at"`
	DeliveredAt          *string             `bson:"delivered_at" json:"delivered_at"`
	CreatedAt            string              `bson:"created_at" json:"created_at"`
	UpdatedAt            string              `bson:"updated_at" json:"updated_at"`
}

// ReviewDocument is the denormalized projection of a review
type ReviewDocument struct {
	SourceID           string `bson:"source_id" json:"source_id"`
	ProductID          string `bson:"product_id" json:"product_id"`
	ProductName        string `bson:"product_name" json:"product_name"`
	AuthorName         string `bson:"author_name" json:"author_name"`
	AuthorEmail        string `bson:"author_email" json:"author_email"`
	Rating             int    `bson:"rating" json:"rating"`
	Title              string `bson:"title" json:"title"`
	Comment            string `bson:"comment" json:"comment"`
	Status             string `bson:"status" json:"status"`
	IsVerifiedPurchase bool   `bson:"is_verified_purchase" json:"is_verified_purchase"`
	CreatedAt          string `bson:"created_at" json:"created_at"`
	UpdatedAt          string `bson:"updated_at" json:"updated_at"`
}

// ContactDocument is the projection of a contact message
type ContactDocument struct {
	SourceID  string `bson:"source_id" json:"source_id"`
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone" json:"phone"`
	Subject   string `bson:"subject" json:"subject"`
	Message   string `bson:"message" json:"message"`
	IsRead    bool   `bson:"is_read" json:"is_read"`
	CreatedAt string `bson:"created_at" json:"created_at"`
	UpdatedAt string `bson:"updated_at" json:"updated_at"`
}
