package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/novastreet/storefront/app/models"
	"github.com/novastreet/storefront/app/repositories"
	"github.com/novastreet/storefront/pkg/cache"
)

// cartTTL keeps abandoned carts around for a month before Redis expires them.
const cartTTL = 30 * 24 * time.Hour

// KV is the small key-value surface the cart needs; pkg/cache satisfies it.
type KV interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
	Delete(key string) error
}

// redisKV adapts the package-level cache helpers to KV.
type redisKV struct{}

func (redisKV) Get(key string, dest interface{}) bool { return cache.Get(key, dest) }
func (redisKV) Set(key string, v interface{}, ttl time.Duration) error {
	return cache.Set(key, v, ttl)
}
func (redisKV) Delete(key string) error { return cache.Delete(key) }

// NewRedisKV returns the Redis-backed KV used in production wiring.
func NewRedisKV() KV { return redisKV{} }

// CartService holds one cart per signed-in shopper. Each add puts one unit
// of the product in the cart; repeat adds bump the quantity.
type CartService struct {
	products ProductStore
	kv       KV
}

func NewCartService(products ProductStore, kv KV) *CartService {
	return &CartService{products: products, kv: kv}
}

func cartKey(userID string) string { return "storefront:cart:" + userID }

// Add puts one unit of the product into userID's cart.
// Returns ErrNotFound when the product does not exist and
// ErrStorageUnavailable when the record store cannot answer.
func (s *CartService) Add(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNoProduct) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	items := s.Items(userID)

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{
			ProductID: product.ID.Hex(),
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  1,
		})
	}

	if err := s.kv.Set(cartKey(userID), items, cartTTL); err != nil {
		return nil, fmt.Errorf("cart: save: %w", err)
	}
	return items, nil
}

// Items returns userID's cart; an empty cart is an empty slice, never nil.
func (s *CartService) Items(userID string) []models.CartItem {
	items := []models.CartItem{}
	s.kv.Get(cartKey(userID), &items)
	return items
}

// Clear empties userID's cart.
func (s *CartService) Clear(userID string) error {
	if err := s.kv.Delete(cartKey(userID)); err != nil {
		return fmt.Errorf("cart: clear: %w", err)
	}
	return nil
}
