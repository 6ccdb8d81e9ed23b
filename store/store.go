// Package store narrows the document database down to the four operations
// the rest of the system is allowed to use: find-one, find-many, insert-one
// and update-one-with-match-filter. The match filter on UpdateOne is what
// makes conditional status transitions possible, so both implementations
// must apply filter and update atomically.
package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrNoDocument is returned by FindOne when no document matches the filter.
var ErrNoDocument = errors.New("no matching document")

// Collection is the document-store capability. Filters use the bson.M query
// shape; implementations support equality matches plus the $in and $ne
// operators, which is all the callers need.
type Collection interface {
	// FindOne decodes the first matching document into out.
	FindOne(ctx context.Context, filter bson.M, out interface{}) error

	// Find decodes all matching documents into out, which must be a
	// pointer to a slice.
	Find(ctx context.Context, filter bson.M, out interface{}) error

	// InsertOne stores a new document. The caller assigns the identifier
	// before inserting.
	InsertOne(ctx context.Context, doc interface{}) error

	// UpdateOne applies a $set update to the first document matching the
	// filter and reports how many documents matched (0 or 1). The match
	// and the write are atomic: a document that stops matching between
	// read and write is never updated.
	UpdateOne(ctx context.Context, filter bson.M, update bson.M) (int64, error)
}
