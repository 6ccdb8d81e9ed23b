package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testDoc struct {
	ID     primitive.ObjectID `bson:"_id"`
	Name   string             `bson:"name"`
	Status string             `bson:"status"`
	Count  int                `bson:"count"`
}

func TestMemoryFindOne(t *testing.T) {
	ctx := context.Background()
	coll := NewMemory()

	id := primitive.NewObjectID()
	require.NoError(t, coll.InsertOne(ctx, testDoc{ID: id, Name: "alpha", Status: "Available"}))

	var got testDoc
	require.NoError(t, coll.FindOne(ctx, bson.M{"_id": id}, &got))
	assert.Equal(t, "alpha", got.Name)

	err := coll.FindOne(ctx, bson.M{"_id": primitive.NewObjectID()}, &got)
	assert.Equal(t, ErrNoDocument, err)
}

func TestMemoryFindOperators(t *testing.T) {
	ctx := context.Background()
	coll := NewMemory()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()
	require.NoError(t, coll.InsertOne(ctx, testDoc{ID: a, Name: "a", Status: "Available"}))
	require.NoError(t, coll.InsertOne(ctx, testDoc{ID: b, Name: "b", Status: "Assigned"}))
	require.NoError(t, coll.InsertOne(ctx, testDoc{ID: c, Name: "c", Status: "Reserved"}))

	var got []testDoc
	require.NoError(t, coll.Find(ctx, bson.M{"_id": bson.M{"$in": []primitive.ObjectID{a, c}}}, &got))
	assert.Len(t, got, 2)

	got = nil
	require.NoError(t, coll.Find(ctx, bson.M{"status": bson.M{"$ne": "Assigned"}}, &got))
	assert.Len(t, got, 2)

	got = nil
	require.NoError(t, coll.Find(ctx, bson.M{}, &got))
	assert.Len(t, got, 3)
}

func TestMemoryConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	coll := NewMemory()

	id := primitive.NewObjectID()
	require.NoError(t, coll.InsertOne(ctx, testDoc{ID: id, Name: "a", Status: "Available"}))

	// Filter that no longer matches must not write.
	matched, err := coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": "Reserved"},
		bson.M{"$set": bson.M{"status": "Assigned"}})
	require.NoError(t, err)
	assert.Zero(t, matched)

	var got testDoc
	require.NoError(t, coll.FindOne(ctx, bson.M{"_id": id}, &got))
	assert.Equal(t, "Available", got.Status)

	matched, err = coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": "Available"},
		bson.M{"$set": bson.M{"status": "Assigned"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	require.NoError(t, coll.FindOne(ctx, bson.M{"_id": id}, &got))
	assert.Equal(t, "Assigned", got.Status)
}

func TestMemoryConditionalUpdateIsAtomic(t *testing.T) {
	ctx := context.Background()
	coll := NewMemory()

	id := primitive.NewObjectID()
	require.NoError(t, coll.InsertOne(ctx, testDoc{ID: id, Name: "a", Status: "Available"}))

	const workers = 32
	results := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			matched, err := coll.UpdateOne(ctx,
				bson.M{"_id": id, "status": "Available"},
				bson.M{"$set": bson.M{"status": "Assigned"}})
			assert.NoError(t, err)
			results <- matched
		}()
	}
	wg.Wait()
	close(results)

	var wins int64
	for matched := range results {
		wins += matched
	}
	assert.Equal(t, int64(1), wins, "exactly one conditional update may match")
}
