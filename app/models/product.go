package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Stock status values. The catalog stores these as plain strings because the
// storefront renders them verbatim.
const (
	StockIn  = "in stock"
	StockOut = "out of stock"
)

// Product is a catalog entry. The JSON tags are the wire contract consumed by
// the storefront pages; bson tags are the record-store layout.
type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
	SubImages   []string           `json:"subImages" bson:"subImages"`
	Price       float64            `json:"price" bson:"price"`
	Discount    *float64           `json:"discount,omitempty" bson:"discount,omitempty"`
	Category    string             `json:"category" bson:"category"`
	Sizes       []string           `json:"sizes" bson:"sizes"`
	Stock       string             `json:"stock" bson:"stock"`
	Status      *string            `json:"status,omitempty" bson:"status,omitempty"`
}
