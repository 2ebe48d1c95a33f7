package repositories

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/novastreet/storefront/app/models"
	"github.com/novastreet/storefront/pkg/database"
)

// ErrNoProduct is returned when a lookup finds no matching product.
var ErrNoProduct = mongo.ErrNoDocuments

// ProductRepository handles record-store operations for Product. The
// collection handle is resolved per call, so constructing the repository
// does not require an open connection.
type ProductRepository struct {
	collection string
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{collection: "products"}
}

func (r *ProductRepository) col() *mongo.Collection {
	return database.Collection(r.collection)
}

// All returns every product in storage-defined order. Callers filter
// client-side; no pagination contract exists on this collection.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("products: find: %w", err)
	}
	return decodeProducts(ctx, cur)
}

// Search returns products whose name, description, or category contains the
// query, case-insensitively. The query is treated as a literal — regex
// metacharacters are quoted — so user input can never break the matcher.
// An empty query matches everything.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	pattern := regexp.QuoteMeta(query)
	re := primitive.Regex{Pattern: pattern, Options: "i"}

	filter := bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"description": re},
		bson.M{"category": re},
	}}

	cur, err := r.col().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("products: search %q: %w", query, err)
	}
	return decodeProducts(ctx, cur)
}

// FindByID looks a product up by its ObjectID hex.
// Returns ErrNoProduct when the identifier is malformed or unknown.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	var p models.Product

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return p, ErrNoProduct
	}

	if err := r.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		return p, fmt.Errorf("products: find %s: %w", id, err)
	}
	return p, nil
}

// Insert persists a new product and fills in its generated identifier.
func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.col().InsertOne(ctx, p); err != nil {
		return fmt.Errorf("products: insert: %w", err)
	}
	return nil
}

func decodeProducts(ctx context.Context, cur *mongo.Cursor) ([]models.Product, error) {
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return products, nil
}
