package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/models"
	"github.com/Deeksha-0406/LAMP/store"
)

func newTestLedger(t *testing.T) (*Ledger, *store.Memory) {
	t.Helper()
	coll := store.NewMemory()
	return New(coll, zap.NewNop()), coll
}

func seedLaptop(t *testing.T, coll *store.Memory, status Status) primitive.ObjectID {
	t.Helper()
	laptop := models.Laptop{
		ID:           primitive.NewObjectID(),
		SerialNumber: "SN-" + primitive.NewObjectID().Hex()[:6],
		Model:        "ThinkPad T14",
		Brand:        "Lenovo",
		Status:       string(status),
	}
	require.NoError(t, coll.InsertOne(context.Background(), laptop))
	return laptop.ID
}

func TestTryTransition(t *testing.T) {
	ctx := context.Background()
	lg, coll := newTestLedger(t)
	id := seedLaptop(t, coll, StatusAvailable)

	require.NoError(t, lg.TryTransition(ctx, id, StatusAvailable, StatusReserved))

	laptop, err := lg.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(StatusReserved), laptop.Status)
	assert.False(t, laptop.UpdatedAt.IsZero())
}

func TestTryTransitionConflict(t *testing.T) {
	ctx := context.Background()
	lg, coll := newTestLedger(t)
	id := seedLaptop(t, coll, StatusAssigned)

	err := lg.TryTransition(ctx, id, StatusAvailable, StatusAssigned)
	assert.ErrorIs(t, err, ErrConflict)

	// The failed compare-and-set must not have written anything.
	laptop, gerr := lg.Get(ctx, id)
	require.NoError(t, gerr)
	assert.Equal(t, string(StatusAssigned), laptop.Status)
}

func TestTryTransitionNotFound(t *testing.T) {
	ctx := context.Background()
	lg, _ := newTestLedger(t)

	err := lg.TryTransition(ctx, primitive.NewObjectID(), StatusAvailable, StatusAssigned)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTryTransitionRejectsInvalidStatus(t *testing.T) {
	ctx := context.Background()
	lg, coll := newTestLedger(t)
	id := seedLaptop(t, coll, StatusAvailable)

	err := lg.TryTransition(ctx, id, Status("Broken"), StatusAssigned)
	assert.Error(t, err)
	err = lg.TryTransition(ctx, id, StatusAvailable, Status(""))
	assert.Error(t, err)
}

// Concurrent compare-and-set calls with the same expected status over the
// same asset: exactly one wins, everyone else conflicts.
func TestTryTransitionConcurrentExactlyOneWinner(t *testing.T) {
	ctx := context.Background()
	lg, coll := newTestLedger(t)
	id := seedLaptop(t, coll, StatusAvailable)

	const racers = 16
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- lg.TryTransition(ctx, id, StatusAvailable, StatusAssigned)
		}()
	}
	wg.Wait()
	close(errs)

	wins, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)

	laptop, err := lg.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(StatusAssigned), laptop.Status)
}

func TestFindAvailableMatching(t *testing.T) {
	ctx := context.Background()
	lg, coll := newTestLedger(t)
	seedLaptop(t, coll, StatusAvailable)
	seedLaptop(t, coll, StatusAvailable)
	seedLaptop(t, coll, StatusAssigned)
	seedLaptop(t, coll, StatusReserved)

	available, err := lg.FindAvailableMatching(ctx, bson.M{})
	require.NoError(t, err)
	assert.Len(t, available, 2)
	for _, laptop := range available {
		assert.Equal(t, string(StatusAvailable), laptop.Status)
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusAvailable.Valid())
	assert.True(t, StatusReserved.Valid())
	assert.True(t, StatusAssigned.Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("Retired").Valid())
}
