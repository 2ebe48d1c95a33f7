package models

// CartItem is one line of a shopper's cart. The cart itself lives in Redis
// keyed by user; products are referenced by ID with a denormalised snapshot
// of the fields the cart page renders.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
