package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"TechMart/internal/events"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (c *capturePublisher) Publish(ctx context.Context, e events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	c.events = append(c.events, e)
	return c.err
}

func (c *capturePublisher) published() []events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]events.Event(nil), c.events...)
}

func newService(t *testing.T) (*Service, *capturePublisher, *prometheus.Registry) {
	t.Helper()

	store := newSeededStore(t)
	reg := prometheus.NewRegistry()
	pub := &capturePublisher{}

	return &Service{
		Store:   store,
		Events:  pub,
		Metrics: NewMetrics(reg, store),
		Log:     zap.NewNop(),
	}, pub, reg
}

func gathered(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			}
		}
	}
	return 0
}

func TestService_PrepareListView(t *testing.T) {
	svc, _, _ := newService(t)

	view := svc.PrepareListView(context.Background())

	assert.Equal(t, 5, view.ProductCount)
	assert.Equal(t, 3, view.CategoryCount)
	assert.Len(t, view.Products, 5)
}

func TestService_PrepareListView_CountMatchesProducts(t *testing.T) {
	svc, _, _ := newService(t)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			raw := rawProduct("churn")
			raw.CategoryID = "999"
			p, err := svc.ValidateAndCreate(context.Background(), raw)
			if err == nil {
				_, _ = svc.DeleteProduct(context.Background(), p.ID)
			}
		}
	}()

	for i := 0; i < 200; i++ {
		view := svc.PrepareListView(context.Background())
		seen := map[string]bool{}
		for _, p := range view.Products {
			seen[p.Category] = true
		}
		require.Equal(t, len(seen), view.CategoryCount)
		require.Equal(t, len(view.Products), view.ProductCount)
	}

	close(stop)
	wg.Wait()
}

func TestService_PrepareDetailView(t *testing.T) {
	svc, _, _ := newService(t)

	view, err := svc.PrepareDetailView(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "Professional Camera Kit", view.Product.Name)
	assert.Equal(t, []int64{1, 2}, ids(view.Related))

	_, err = svc.PrepareDetailView(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ValidateAndCreate(t *testing.T) {
	svc, pub, reg := newService(t)

	p, err := svc.ValidateAndCreate(context.Background(), RawProduct{
		Name:        "  USB-C Cable ",
		CategoryID:  "1",
		Price:       "9.99",
		Description: " braided ",
		Stock:       "10",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), p.ID)
	assert.Equal(t, "USB-C Cable", p.Name)
	assert.Equal(t, "braided", p.Description)
	assert.Equal(t, "Electronics", p.CategoryName)
	assert.Equal(t, "PROD-006", p.SKU)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("9.99")))

	stored, ok := svc.Store.GetByID(6)
	require.True(t, ok)
	assert.Equal(t, p.Name, stored.Name)

	got := pub.published()
	require.Len(t, got, 1)
	assert.Equal(t, events.TypeProductCreated, got[0].Type)
	assert.Equal(t, int64(6), got[0].ProductID)

	assert.Equal(t, 1.0, gathered(t, reg, "catalog_products_created_total", nil))
	assert.Equal(t, 6.0, gathered(t, reg, "catalog_products", nil))
}

func rawProduct(name string) RawProduct {
	return RawProduct{Name: name, CategoryID: "1", Price: "9.99", Stock: "10"}
}

func TestService_ValidateAndCreate_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*RawProduct)
		field string
	}{
		{"missing name", func(r *RawProduct) { r.Name = "   " }, "name"},
		{"bad category", func(r *RawProduct) { r.CategoryID = "abc" }, "category"},
		{"blank category", func(r *RawProduct) { r.CategoryID = "" }, "category"},
		{"negative price", func(r *RawProduct) { r.Price = "-5.00" }, "price"},
		{"bad price", func(r *RawProduct) { r.Price = "ten" }, "price"},
		{"blank price", func(r *RawProduct) { r.Price = "  " }, "price"},
		{"bad stock", func(r *RawProduct) { r.Stock = "abc" }, "stock"},
		{"negative stock", func(r *RawProduct) { r.Stock = "-1" }, "stock"},
		{"fractional stock", func(r *RawProduct) { r.Stock = "1.5" }, "stock"},
		{"blank stock", func(r *RawProduct) { r.Stock = "" }, "stock"},
		{"name checked first", func(r *RawProduct) { r.Name, r.Price, r.Stock = "", "-1", "abc" }, "name"},
		{"category before price", func(r *RawProduct) { r.CategoryID, r.Price = "", "" }, "category"},
		{"price before stock", func(r *RawProduct) { r.Price, r.Stock = "-1", "abc" }, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pub, reg := newService(t)

			raw := rawProduct("Cable")
			tt.edit(&raw)
			_, err := svc.ValidateAndCreate(context.Background(), raw)

			ie, ok := AsInvalidInput(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.field, ie.Field)
			assert.True(t, strings.HasPrefix(ie.Error(), tt.field+" "))

			assert.Len(t, svc.Store.ListAll(), 5)
			assert.Empty(t, pub.published())
			assert.Equal(t, 1.0, gathered(t, reg, "catalog_create_rejected_total", map[string]string{"field": tt.field}))
		})
	}
}

func TestService_ValidateAndCreate_NegativePriceMessage(t *testing.T) {
	svc, _, _ := newService(t)

	raw := rawProduct("Broken")
	raw.Price = "-5.00"
	_, err := svc.ValidateAndCreate(context.Background(), raw)

	assert.EqualError(t, err, "price invalid")
}

func TestService_ValidateAndCreate_OnlyNameGiven(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.ValidateAndCreate(context.Background(), RawProduct{Name: "Bare"})

	assert.EqualError(t, err, "category invalid")
	assert.Len(t, svc.Store.ListAll(), 5)
}

func TestService_ValidateAndCreate_InternalFailure(t *testing.T) {
	svc, pub, reg := newService(t)
	svc.parse = func(RawProduct) (Draft, error) {
		panic("decoder exploded: /var/secret/path")
	}

	p, err := svc.ValidateAndCreate(context.Background(), rawProduct("Cable"))

	assert.ErrorIs(t, err, ErrInternal)
	assert.EqualError(t, err, "could not add product")
	assert.Equal(t, Product{}, p)
	_, ok := AsInvalidInput(err)
	assert.False(t, ok)

	assert.Len(t, svc.Store.ListAll(), 5)
	assert.Empty(t, pub.published())
	assert.Equal(t, 1.0, gathered(t, reg, "catalog_create_rejected_total", map[string]string{"field": "internal"}))
	assert.Equal(t, 0.0, gathered(t, reg, "catalog_products_created_total", nil))

	svc.parse = nil
	_, err = svc.ValidateAndCreate(context.Background(), rawProduct("Cable"))
	assert.NoError(t, err)
}

func TestService_ValidateAndCreate_UnknownCategory(t *testing.T) {
	svc, _, _ := newService(t)

	raw := rawProduct("Mystery")
	raw.CategoryID = "999"
	p, err := svc.ValidateAndCreate(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, UncategorizedName, p.CategoryName)
	assert.Equal(t, 4, svc.Store.CountDistinctCategories())
}

func TestService_ValidateAndCreate_SuppliedSKU(t *testing.T) {
	svc, _, _ := newService(t)

	raw := rawProduct("Cable")
	raw.SKU = "  CAB-1 "
	p, err := svc.ValidateAndCreate(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "CAB-1", p.SKU)
}

func TestService_PublishFailureDoesNotFailMutation(t *testing.T) {
	svc, pub, reg := newService(t)
	pub.err = errors.New("broker down")

	p, err := svc.ValidateAndCreate(context.Background(), rawProduct("Cable"))
	require.NoError(t, err)

	_, err = svc.DeleteProduct(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, 2.0, gathered(t, reg, "catalog_event_publish_failures_total", nil))
}

func TestService_DeleteProduct(t *testing.T) {
	svc, pub, reg := newService(t)

	p, err := svc.DeleteProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Smart Fitness Watch", p.Name)

	_, ok := svc.Store.GetByID(2)
	assert.False(t, ok)

	_, err = svc.DeleteProduct(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)

	got := pub.published()
	require.Len(t, got, 1)
	assert.Equal(t, events.TypeProductDeleted, got[0].Type)
	assert.Equal(t, "2", got[0].Key())

	assert.Equal(t, 1.0, gathered(t, reg, "catalog_products_deleted_total", nil))
}

func TestService_WithoutOptionalDeps(t *testing.T) {
	svc := &Service{Store: newSeededStore(t)}

	p, err := svc.ValidateAndCreate(context.Background(), rawProduct("Cable"))
	require.NoError(t, err)

	_, err = svc.DeleteProduct(context.Background(), p.ID)
	assert.NoError(t, err)
}

func TestParseDraft(t *testing.T) {
	d, err := ParseDraft(RawProduct{
		Name:       "Lamp",
		CategoryID: " 3 ",
		Price:      "19.50",
		Stock:      "7",
	})
	require.NoError(t, err)

	assert.Equal(t, "Lamp", d.Name)
	assert.Equal(t, int64(3), d.CategoryID)
	assert.Equal(t, "19.5", d.Price.String())
	assert.Equal(t, int64(7), d.Stock)
}
