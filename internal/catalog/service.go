package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"TechMart/internal/events"
	"TechMart/pkg/kit"
)

const publishTimeout = 2 * time.Second

// RawProduct is untrusted create input, one string per submitted field.
type RawProduct struct {
	Name        string
	CategoryID  string
	Price       string
	Description string
	Stock       string
	SKU         string
}

type ListView struct {
	ProductCount  int       `json:"product_count"`
	CategoryCount int       `json:"category_count"`
	Products      []Product `json:"products"`
}

type DetailView struct {
	Product Product   `json:"product"`
	Related []Product `json:"related_products"`
}

// User is the fixed, unauthenticated operator shown by the UI.
type User struct {
	Name       string `json:"name"`
	IsLoggedIn bool   `json:"is_logged_in"`
	IsAdmin    bool   `json:"is_admin"`
	Role       string `json:"role"`
	CartItems  int    `json:"cart_items"`
}

func PlaceholderUser() User {
	return User{Name: "Admin User", IsLoggedIn: true, IsAdmin: true, Role: "Administrator", CartItems: 3}
}

// Service validates untrusted input and shapes store results. Events,
// Metrics and Log are optional.
type Service struct {
	Store   Store
	Events  events.Publisher
	Metrics *Metrics
	Log     *zap.Logger

	// parse defaults to ParseDraft.
	parse func(RawProduct) (Draft, error)
}

func (s *Service) PrepareListView(ctx context.Context) ListView {
	products, categories := s.Store.ListWithCategoryCount()
	return ListView{
		ProductCount:  len(products),
		CategoryCount: categories,
		Products:      products,
	}
}

func (s *Service) PrepareDetailView(ctx context.Context, id int64) (DetailView, error) {
	p, ok := s.Store.GetByID(id)
	if !ok {
		return DetailView{}, ErrNotFound
	}
	return DetailView{
		Product: p,
		Related: s.Store.ListRelated(p, DefaultRelatedLimit),
	}, nil
}

func (s *Service) Categories(ctx context.Context) []Category {
	return s.Store.Categories()
}

// ValidateAndCreate parses raw and inserts it. Failures are an
// *InvalidInputError naming the first bad field, or ErrInternal; in both
// cases the store is untouched.
func (s *Service) ValidateAndCreate(ctx context.Context, raw RawProduct) (Product, error) {
	d, err := s.draft(raw)
	if err != nil {
		if ie, ok := AsInvalidInput(err); ok {
			s.Metrics.rejected(ie.Field)
			s.log().Debug("create product rejected", zap.String("field", ie.Field), zap.String("reason", ie.Reason))
			return Product{}, err
		}
		s.Metrics.rejected("internal")
		s.log().Error("create product failed", zap.Error(err))
		return Product{}, ErrInternal
	}

	p := s.Store.Insert(d)
	s.Metrics.created()
	s.log().Info("product created", zap.Int64("id", p.ID), zap.String("sku", p.SKU), zap.String("category", p.Category))

	s.publish(ctx, events.New(events.TypeProductCreated, p.ID, p))
	return p, nil
}

// DeleteProduct removes id and returns what was removed, or ErrNotFound.
func (s *Service) DeleteProduct(ctx context.Context, id int64) (Product, error) {
	p, ok := s.Store.Delete(id)
	if !ok {
		return Product{}, ErrNotFound
	}

	s.Metrics.deleted()
	s.log().Info("product deleted", zap.Int64("id", p.ID), zap.String("name", p.Name))

	s.publish(ctx, events.New(events.TypeProductDeleted, p.ID, p))
	return p, nil
}

// draft runs ParseDraft with any panic turned into a plain error.
func (s *Service) draft(raw RawProduct) (d Draft, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			d, err = Draft{}, errors.New("panic while parsing product input")
			s.log().Error("parse product panicked", zap.Any("panic", rec))
		}
	}()
	if s.parse != nil {
		return s.parse(raw)
	}
	return ParseDraft(raw)
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.Events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.Events.Publish(ctx, e); err != nil {
		s.Metrics.publishFailed()
		s.log().Warn("publish event failed",
			zap.Error(err),
			zap.String("type", e.Type),
			zap.Int64("product_id", e.ProductID),
		)
	}
}

func (s *Service) log() *zap.Logger { return kit.OrNop(s.Log) }

// ParseDraft validates raw in a fixed order (name, category, price, stock)
// and stops at the first failure. Blank numeric fields are rejected.
func ParseDraft(raw RawProduct) (Draft, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Draft{}, invalid("name", "required")
	}

	categoryID, err := strconv.ParseInt(strings.TrimSpace(raw.CategoryID), 10, 64)
	if err != nil {
		return Draft{}, invalid("category", "invalid")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(raw.Price))
	if err != nil || price.IsNegative() {
		return Draft{}, invalid("price", "invalid")
	}

	stock, err := strconv.ParseInt(strings.TrimSpace(raw.Stock), 10, 64)
	if err != nil || stock < 0 {
		return Draft{}, invalid("stock", "invalid")
	}

	return Draft{
		Name:        name,
		CategoryID:  categoryID,
		Price:       price,
		Description: strings.TrimSpace(raw.Description),
		Stock:       stock,
		SKU:         strings.TrimSpace(raw.SKU),
	}, nil
}
