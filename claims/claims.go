// Package claims keeps the reservation and assignment audit trail. A claim
// is only opened after the ledger transition it documents has succeeded, so
// a failed transition never produces a record.
package claims

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/models"
	"github.com/Deeksha-0406/LAMP/store"
)

// ErrClaimNotFound is returned when a claim identifier resolves to nothing.
var ErrClaimNotFound = errors.New("claim not found")

type Recorder struct {
	reservations store.Collection
	assignments  store.Collection
	logger       *zap.Logger
}

func NewRecorder(reservations, assignments store.Collection, logger *zap.Logger) *Recorder {
	return &Recorder{reservations: reservations, assignments: assignments, logger: logger}
}

// OpenReservation records a hold on an asset. Call only after the ledger
// moved the asset to Reserved.
func (r *Recorder) OpenReservation(ctx context.Context, employeeID, assetID primitive.ObjectID) (string, error) {
	res := models.Reservation{
		ID:           uuid.New().String(),
		EmployeeID:   employeeID,
		LaptopID:     assetID,
		ReservedDate: time.Now().UTC(),
		Status:       models.ReservationReserved,
	}
	if err := r.reservations.InsertOne(ctx, res); err != nil {
		return "", errors.Wrap(err, "failed to record reservation")
	}
	return res.ID, nil
}

// OpenAssignment records a laptop handed out. employeeID may be nil when
// the request did not originate from a known employee.
func (r *Recorder) OpenAssignment(ctx context.Context, employeeID *primitive.ObjectID, assetID primitive.ObjectID) (string, error) {
	asg := models.Assignment{
		ID:           uuid.New().String(),
		EmployeeID:   employeeID,
		LaptopID:     assetID,
		AssignedDate: time.Now().UTC(),
		Status:       models.AssignmentActive,
	}
	if err := r.assignments.InsertOne(ctx, asg); err != nil {
		return "", errors.Wrap(err, "failed to record assignment")
	}
	return asg.ID, nil
}

// CloseReservation moves a reservation to its terminal state, Active on
// pickup or Cancelled otherwise.
func (r *Recorder) CloseReservation(ctx context.Context, claimID, outcome string) error {
	matched, err := r.reservations.UpdateOne(ctx,
		bson.M{"_id": claimID, "status": models.ReservationReserved},
		bson.M{"$set": bson.M{"status": outcome}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to close reservation")
	}
	if matched == 0 {
		return ErrClaimNotFound
	}
	return nil
}

// CloseAssignment marks an assignment Returned and stamps the return date.
func (r *Recorder) CloseAssignment(ctx context.Context, claimID string) error {
	matched, err := r.assignments.UpdateOne(ctx,
		bson.M{"_id": claimID, "status": models.AssignmentActive},
		bson.M{"$set": bson.M{"status": models.AssignmentReturned, "returnedDate": time.Now().UTC()}},
	)
	if err != nil {
		return errors.Wrap(err, "failed to close assignment")
	}
	if matched == 0 {
		return ErrClaimNotFound
	}
	return nil
}

// OpenReservationForEmployee returns the employee's reservation with status
// Reserved, or ErrClaimNotFound.
func (r *Recorder) OpenReservationForEmployee(ctx context.Context, employeeID primitive.ObjectID) (models.Reservation, error) {
	var res models.Reservation
	err := r.reservations.FindOne(ctx, bson.M{"employeeId": employeeID, "status": models.ReservationReserved}, &res)
	if err == store.ErrNoDocument {
		return models.Reservation{}, ErrClaimNotFound
	}
	if err != nil {
		return models.Reservation{}, errors.Wrap(err, "failed to query reservations")
	}
	return res, nil
}

// OpenAssignmentsForEmployee returns every Active assignment of an employee.
func (r *Recorder) OpenAssignmentsForEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Assignment, error) {
	var out []models.Assignment
	err := r.assignments.Find(ctx, bson.M{"employeeId": employeeID, "status": models.AssignmentActive}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query assignments")
	}
	return out, nil
}

// AssignmentHistory returns every assignment ever recorded, open or closed.
// The forecaster is its only consumer and tolerates a stale snapshot.
func (r *Recorder) AssignmentHistory(ctx context.Context) ([]models.Assignment, error) {
	var out []models.Assignment
	err := r.assignments.Find(ctx, bson.M{}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load assignment history")
	}
	return out, nil
}
