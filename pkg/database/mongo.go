// Package database owns the process-wide MongoDB connection.
//
// The client is established once at boot and reused by every request; there
// is no per-request connect/disconnect. Repositories obtain collections via
// Collection(name).
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/novastreet/storefront/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB connection and verifies it with a ping.
// Returns an error instead of exiting so the caller can shut down gracefully.
func Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDB())
	return nil
}

// Disconnect tears the connection down. Called once on shutdown.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	client = nil
	db = nil
	return nil
}

// Collection returns a handle to the named collection.
// Panics when called before Connect — that is a programming error, not a
// runtime condition.
func Collection(name string) *mongo.Collection {
	if db == nil {
		panic("database: Collection called before Connect")
	}
	return db.Collection(name)
}

// Connected reports whether Connect has succeeded.
func Connected() bool { return db != nil }
