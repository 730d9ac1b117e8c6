package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names owned by this service.
const (
	CollMenuItems            = "menuItems"
	CollCategories           = "categories"
	CollPendingOrders        = "pendingOrders"
	CollOrders               = "orders"
	CollTableBills           = "tableBills"
	CollPaymentConfirmations = "paymentConfirmations"
	CollBills                = "bills"
	CollRestaurantSettings   = "restaurantSettings"
)

// ErrNotFound is returned by Get when no document carries the given id.
var ErrNotFound = errors.New("database: document not found")

// Store is the document-store contract the services are written against:
// collection-scoped create/read/update/delete plus equality queries. No
// multi-document transactions are assumed; callers get atomicity through
// sequencing, idempotency keys and the UpdateFieldsIf compare-and-set.
type Store interface {
	// Create inserts doc and returns its id. The document's own id field
	// (bson "_id") must already be populated; see NewID.
	Create(ctx context.Context, collection string, doc any) (string, error)

	// Get decodes the document with the given id into out.
	Get(ctx context.Context, collection, id string, out any) error

	// UpdateFields applies a partial $set-style update.
	UpdateFields(ctx context.Context, collection, id string, fields map[string]any) error

	// UpdateFieldsIf applies the update only if every cond field still
	// matches; reports whether a document matched. This is the optimistic
	// concurrency primitive used for version and status tokens.
	UpdateFieldsIf(ctx context.Context, collection, id string, cond map[string]any, fields map[string]any) (bool, error)

	// Increment atomically adds delta to a numeric field.
	Increment(ctx context.Context, collection, id, field string, delta int64) error

	Delete(ctx context.Context, collection, id string) error

	// Query decodes every document matching the equality filter into out,
	// which must be a pointer to a slice.
	Query(ctx context.Context, collection string, filter map[string]any, out any) error
}

// NewID mints a document id in the hex ObjectID format used across all
// collections.
func NewID() string {
	return primitive.NewObjectID().Hex()
}
