// Package ledger is the single source of truth for laptop status. Every
// status change in the system goes through TryTransition; nothing else is
// allowed to write the status field.
package ledger

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/models"
	"github.com/Deeksha-0406/LAMP/store"
)

// Status is the lifecycle state of a laptop. A laptop has exactly one
// status at any instant.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusReserved  Status = "Reserved"
	StatusAssigned  Status = "Assigned"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusAssigned:
		return true
	}
	return false
}

var (
	// ErrConflict means the asset's actual status did not match the
	// expected status at the moment of mutation. Callers treat this as a
	// recoverable outcome, not a failure.
	ErrConflict = errors.New("asset status conflict")

	// ErrNotFound means the asset identifier resolves to no laptop.
	ErrNotFound = errors.New("asset not found")
)

type Ledger struct {
	laptops store.Collection
	logger  *zap.Logger
}

func New(laptops store.Collection, logger *zap.Logger) *Ledger {
	return &Ledger{laptops: laptops, logger: logger}
}

// TryTransition moves an asset from expected to next in a single
// compare-and-set against the store. When two callers race over the same
// asset with the same expected status, the match filter guarantees exactly
// one of them wins; the rest get ErrConflict.
func (l *Ledger) TryTransition(ctx context.Context, assetID primitive.ObjectID, expected, next Status) error {
	if !expected.Valid() || !next.Valid() {
		return errors.Errorf("invalid status transition %q -> %q", expected, next)
	}

	matched, err := l.laptops.UpdateOne(ctx,
		bson.M{"_id": assetID, "status": string(expected)},
		bson.M{"$set": bson.M{"status": string(next), "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to transition asset status")
	}
	if matched == 0 {
		// Distinguish a lost race from a bad identifier.
		var laptop models.Laptop
		ferr := l.laptops.FindOne(ctx, bson.M{"_id": assetID}, &laptop)
		if ferr == store.ErrNoDocument {
			return ErrNotFound
		}
		if ferr != nil {
			return errors.Wrap(ferr, "failed to look up asset after conflict")
		}
		l.logger.Info("asset transition conflict",
			zap.String("assetId", assetID.Hex()),
			zap.String("expected", string(expected)),
			zap.String("actual", laptop.Status),
			zap.String("next", string(next)))
		return ErrConflict
	}
	return nil
}

// Get returns the laptop for an identifier.
func (l *Ledger) Get(ctx context.Context, assetID primitive.ObjectID) (models.Laptop, error) {
	var laptop models.Laptop
	err := l.laptops.FindOne(ctx, bson.M{"_id": assetID}, &laptop)
	if err == store.ErrNoDocument {
		return models.Laptop{}, ErrNotFound
	}
	if err != nil {
		return models.Laptop{}, errors.Wrap(err, "failed to load asset")
	}
	return laptop, nil
}

// FindAvailableMatching returns a snapshot of Available laptops matching the
// extra filter. The snapshot can be stale the moment it is returned; callers
// must revalidate any candidate with TryTransition before trusting it.
func (l *Ledger) FindAvailableMatching(ctx context.Context, extra bson.M) ([]models.Laptop, error) {
	filter := bson.M{"status": string(StatusAvailable)}
	for k, v := range extra {
		filter[k] = v
	}

	var laptops []models.Laptop
	if err := l.laptops.Find(ctx, filter, &laptops); err != nil {
		return nil, errors.Wrap(err, "failed to query available assets")
	}
	return laptops, nil
}
