package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo adapts a *mongo.Collection to the Collection capability. MongoDB's
// UpdateOne already matches and writes atomically, so the conditional-update
// contract holds without extra work.
type Mongo struct {
	coll *mongo.Collection
}

func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

func (m *Mongo) FindOne(ctx context.Context, filter bson.M, out interface{}) error {
	err := m.coll.FindOne(ctx, filter).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNoDocument
	}
	if err != nil {
		return errors.Wrap(err, "failed to find document")
	}
	return nil
}

func (m *Mongo) Find(ctx context.Context, filter bson.M, out interface{}) error {
	cursor, err := m.coll.Find(ctx, filter)
	if err != nil {
		return errors.Wrap(err, "failed to query documents")
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, out); err != nil {
		return errors.Wrap(err, "failed to decode documents")
	}
	return nil
}

func (m *Mongo) InsertOne(ctx context.Context, doc interface{}) error {
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to insert document")
	}
	return nil
}

func (m *Mongo) UpdateOne(ctx context.Context, filter bson.M, update bson.M) (int64, error) {
	res, err := m.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, errors.Wrap(err, "failed to update document")
	}
	return res.MatchedCount, nil
}
