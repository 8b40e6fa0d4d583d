package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// UncategorizedName is stored on products whose category id matches no
	// known category.
	UncategorizedName = "Uncategorized"

	DefaultRelatedLimit = 4

	skuPrefix = "PROD-"
)

type Review struct {
	AuthorName       string `json:"author_name"`
	Date             string `json:"date"`
	Rating           int    `json:"rating"`
	Content          string `json:"content"`
	VerifiedPurchase bool   `json:"verified_purchase"`
}

type Spec struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is one catalog entry. Category and CategoryName are snapshots of
// the category name taken at insertion; grouping uses Category.
type Product struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	CategoryID     int64           `json:"category_id"`
	CategoryName   string          `json:"category_name"`
	Stock          int64           `json:"stock"`
	ImageURL       string          `json:"image_url"`
	Rating         int             `json:"rating"`
	ReviewCount    int             `json:"review_count"`
	SKU            string          `json:"sku"`
	Brand          string          `json:"brand"`
	Warranty       string          `json:"warranty"`
	ShippingInfo   string          `json:"shipping_info"`
	RestockDate    string          `json:"restock_date"`
	LastUpdated    string          `json:"last_updated"`
	Specifications []Spec          `json:"specifications"`
	Reviews        []Review        `json:"reviews"`
}

func (p Product) clone() Product {
	p.Specifications = append(make([]Spec, 0, len(p.Specifications)), p.Specifications...)
	p.Reviews = append(make([]Review, 0, len(p.Reviews)), p.Reviews...)
	return p
}

// Draft holds validated fields ready for Insert. An empty SKU is replaced by
// a generated one derived from the assigned id.
type Draft struct {
	Name        string
	CategoryID  int64
	Price       decimal.Decimal
	Description string
	Stock       int64
	SKU         string
}

// Store is the catalog collection consumed by Service. Lookups report
// absence with a false second result.
type Store interface {
	ListAll() []Product
	GetByID(id int64) (Product, bool)
	ListRelated(p Product, limit int) []Product
	CountDistinctCategories() int
	ListWithCategoryCount() ([]Product, int)
	Len() int
	Categories() []Category
	Insert(d Draft) Product
	Delete(id int64) (Product, bool)
}

// DefaultSKU is the SKU given to products created without one.
func DefaultSKU(id int64) string {
	return fmt.Sprintf("%s%03d", skuPrefix, id)
}
