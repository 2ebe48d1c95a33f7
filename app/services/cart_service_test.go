package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/novastreet/storefront/app/models"
	"github.com/novastreet/storefront/app/services"
)

// memKV is an in-memory KV for cart tests; TTLs are accepted and ignored.
type memKV struct {
	data map[string][]models.CartItem
}

func newMemKV() *memKV { return &memKV{data: map[string][]models.CartItem{}} }

func (m *memKV) Get(key string, dest interface{}) bool {
	items, ok := m.data[key]
	if !ok {
		return false
	}
	if out, ok := dest.(*[]models.CartItem); ok {
		*out = append([]models.CartItem{}, items...)
		return true
	}
	return false
}

func (m *memKV) Set(key string, value interface{}, _ time.Duration) error {
	items, ok := value.([]models.CartItem)
	if !ok {
		return errors.New("memKV: unexpected value type")
	}
	m.data[key] = append([]models.CartItem{}, items...)
	return nil
}

func (m *memKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func cartFixture() (*services.CartService, models.Product) {
	product := models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "Classic Cotton Tee",
		Image: "/uploads/tee.jpg",
		Price: 499,
	}
	store := &fakeProductStore{products: []models.Product{product}}
	return services.NewCartService(store, newMemKV()), product
}

func TestCartAddNewItem(t *testing.T) {
	cart, product := cartFixture()

	items, err := cart.Add(context.Background(), "user-1", product.ID.Hex())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.ProductID != product.ID.Hex() || item.Name != product.Name {
		t.Errorf("item = %+v", item)
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Quantity)
	}
	if item.Price != 499 {
		t.Errorf("price = %v", item.Price)
	}
}

func TestCartAddSameProductIncrementsQuantity(t *testing.T) {
	cart, product := cartFixture()
	ctx := context.Background()

	cart.Add(ctx, "user-1", product.ID.Hex()) //nolint:errcheck
	items, err := cart.Add(ctx, "user-1", product.ID.Hex())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", items[0].Quantity)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	cart, _ := cartFixture()

	_, err := cart.Add(context.Background(), "user-1", primitive.NewObjectID().Hex())
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCartAddStoreOutageIsNotNotFound(t *testing.T) {
	cart := services.NewCartService(&fakeProductStore{failFind: true}, newMemKV())

	_, err := cart.Add(context.Background(), "user-1", primitive.NewObjectID().Hex())
	if !errors.Is(err, services.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
	if errors.Is(err, services.ErrNotFound) {
		t.Error("a store outage must not read as a missing product")
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	cart, product := cartFixture()
	ctx := context.Background()

	cart.Add(ctx, "user-1", product.ID.Hex()) //nolint:errcheck

	if items := cart.Items("user-2"); len(items) != 0 {
		t.Errorf("user-2 cart should be empty, got %v", items)
	}
	if items := cart.Items("user-1"); len(items) != 1 {
		t.Errorf("user-1 cart should have 1 item, got %v", items)
	}
}

func TestCartItemsEmptyIsNeverNil(t *testing.T) {
	cart, _ := cartFixture()

	items := cart.Items("user-without-cart")
	if items == nil {
		t.Error("empty cart must be an empty slice, not nil")
	}
}

func TestCartClear(t *testing.T) {
	cart, product := cartFixture()
	ctx := context.Background()

	cart.Add(ctx, "user-1", product.ID.Hex()) //nolint:errcheck
	if err := cart.Clear("user-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if items := cart.Items("user-1"); len(items) != 0 {
		t.Errorf("expected empty cart after clear, got %v", items)
	}
}
