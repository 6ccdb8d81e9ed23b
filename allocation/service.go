// Package allocation is the workflow tying the ledger, claims, codec and
// predictor together for recommend, reserve, onboard and offboard. All
// asset mutation funnels through the ledger's compare-and-set; the
// orchestrator interprets a Conflict as a recoverable outcome and either
// retries candidate selection or reports exhaustion.
package allocation

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Deeksha-0406/LAMP/claims"
	"github.com/Deeksha-0406/LAMP/feature"
	"github.com/Deeksha-0406/LAMP/ledger"
	"github.com/Deeksha-0406/LAMP/models"
	"github.com/Deeksha-0406/LAMP/predictor"
	"github.com/Deeksha-0406/LAMP/store"
)

var (
	// ErrNotFound means the employee or asset identifier did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrNotAvailable means the asset is not in the state the operation
	// requires, usually because another request got there first.
	ErrNotAvailable = errors.New("asset not available")

	// ErrNoCandidate means prediction and matching produced nothing
	// usable. The orchestrator degrades gracefully rather than fabricate
	// an assignment.
	ErrNoCandidate = errors.New("no candidate asset")
)

// defaultCandidateRetries caps re-candidate attempts after a lost race.
// Bounded so sustained contention degrades to NoCandidate instead of
// livelocking.
const defaultCandidateRetries = 3

// EventPublisher receives allocation lifecycle events for live listeners.
type EventPublisher interface {
	AssetAssigned(assetID, employeeID string)
	AssetReserved(assetID, employeeID string)
	AssetReturned(assetID, employeeID string)
}

// Policy holds tunable allocation behavior.
type Policy struct {
	// MaxCandidateRetries bounds how many fallback candidates are tried
	// after a transition conflict. Zero means the default.
	MaxCandidateRetries int

	// SingleAssignmentPerEmployee, when set, makes a repeat recommend
	// call return the employee's existing active assignment instead of
	// granting a second laptop. Off by default; whether an employee may
	// hold several laptops is a policy question, not an invariant.
	SingleAssignmentPerEmployee bool
}

// AssetSummary is what the request layer gets back for a granted laptop.
type AssetSummary struct {
	LaptopID       string                `json:"laptopId"`
	SerialNumber   string                `json:"serialNumber"`
	Model          string                `json:"model"`
	Brand          string                `json:"brand"`
	Specifications models.Specifications `json:"specifications"`
}

// Profile is the onboarding input: who the employee is plus their declared
// requirement attributes.
type Profile struct {
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Role            string                `json:"role"`
	ExperienceLevel string                `json:"experienceLevel"`
	Age             int                   `json:"age"`
	Requirements    models.Specifications `json:"requirements"`
}

type Service struct {
	ledger    *ledger.Ledger
	claims    *claims.Recorder
	codec     *feature.Codec
	predictor predictor.Predictor
	employees store.Collection
	events    EventPublisher
	logger    *zap.Logger
	policy    Policy
}

func NewService(
	lg *ledger.Ledger,
	rec *claims.Recorder,
	codec *feature.Codec,
	pred predictor.Predictor,
	employees store.Collection,
	events EventPublisher,
	logger *zap.Logger,
	policy Policy,
) *Service {
	if events == nil {
		events = noopEvents{}
	}
	if policy.MaxCandidateRetries <= 0 {
		policy.MaxCandidateRetries = defaultCandidateRetries
	}
	return &Service{
		ledger:    lg,
		claims:    rec,
		codec:     codec,
		predictor: pred,
		employees: employees,
		events:    events,
		logger:    logger,
		policy:    policy,
	}
}

type noopEvents struct{}

func (noopEvents) AssetAssigned(string, string) {}
func (noopEvents) AssetReserved(string, string) {}
func (noopEvents) AssetReturned(string, string) {}

// RecommendOrAssign grants a laptop to an employee. An open reservation
// wins over prediction: its asset moves Reserved -> Assigned, the
// reservation closes as Active and the predictor is never consulted.
// Otherwise the predictor proposes a candidate which must still win the
// Available -> Assigned transition before any claim is written.
func (s *Service) RecommendOrAssign(ctx context.Context, employeeName string, attrs feature.Attributes) (AssetSummary, error) {
	emp, err := s.employeeByName(ctx, employeeName)
	if err != nil {
		return AssetSummary{}, err
	}

	if res, rerr := s.claims.OpenReservationForEmployee(ctx, emp.ID); rerr == nil {
		summary, herr := s.honorReservation(ctx, emp.ID, res)
		if herr == nil {
			return summary, nil
		}
		if !errors.Is(herr, ledger.ErrConflict) && !errors.Is(herr, ledger.ErrNotFound) {
			return AssetSummary{}, herr
		}
		// The reserved asset was mutated behind our back. Cancel the
		// stale hold and fall through to prediction.
		s.logger.Warn("reservation out of sync with ledger, cancelling",
			zap.String("reservationId", res.ID),
			zap.String("assetId", res.LaptopID.Hex()),
			zap.Error(herr))
		if cerr := s.claims.CloseReservation(ctx, res.ID, models.ReservationCancelled); cerr != nil {
			s.logger.Error("failed to cancel stale reservation",
				zap.String("reservationId", res.ID), zap.Error(cerr))
		}
	} else if rerr != claims.ErrClaimNotFound {
		return AssetSummary{}, rerr
	}

	if s.policy.SingleAssignmentPerEmployee {
		if open, aerr := s.claims.OpenAssignmentsForEmployee(ctx, emp.ID); aerr == nil && len(open) > 0 {
			laptop, gerr := s.ledger.Get(ctx, open[0].LaptopID)
			if gerr != nil {
				return AssetSummary{}, gerr
			}
			return summarize(laptop), nil
		}
	}

	return s.assignByPrediction(ctx, emp.ID, attrs)
}

func (s *Service) honorReservation(ctx context.Context, employeeID primitive.ObjectID, res models.Reservation) (AssetSummary, error) {
	if err := s.ledger.TryTransition(ctx, res.LaptopID, ledger.StatusReserved, ledger.StatusAssigned); err != nil {
		return AssetSummary{}, err
	}
	if _, err := s.claims.OpenAssignment(ctx, &employeeID, res.LaptopID); err != nil {
		s.rollbackTransition(ctx, res.LaptopID, ledger.StatusAssigned, ledger.StatusReserved)
		return AssetSummary{}, err
	}
	if err := s.claims.CloseReservation(ctx, res.ID, models.ReservationActive); err != nil {
		s.logger.Error("failed to activate reservation after transition",
			zap.String("reservationId", res.ID), zap.Error(err))
	}
	laptop, err := s.ledger.Get(ctx, res.LaptopID)
	if err != nil {
		return AssetSummary{}, err
	}
	s.events.AssetAssigned(laptop.ID.Hex(), employeeID.Hex())
	return summarize(laptop), nil
}

func (s *Service) assignByPrediction(ctx context.Context, employeeID primitive.ObjectID, attrs feature.Attributes) (AssetSummary, error) {
	vector := s.codec.Encode(attrs)

	class, err := s.predictor.Predict(vector)
	if err != nil {
		if errors.Is(err, predictor.ErrNoCandidate) {
			return AssetSummary{}, ErrNoCandidate
		}
		return AssetSummary{}, errors.Wrap(err, "prediction failed")
	}

	tried := map[string]bool{}

	assetHex, err := s.codec.Decode(class)
	if err == nil {
		assetID, perr := primitive.ObjectIDFromHex(assetHex)
		if perr != nil {
			s.logger.Warn("predicted class maps to malformed asset id",
				zap.Int("class", class), zap.String("assetId", assetHex))
		} else {
			tried[assetHex] = true
			if summary, aerr := s.claimAssignment(ctx, employeeID, assetID); aerr == nil {
				return summary, nil
			} else if !errors.Is(aerr, ledger.ErrConflict) && !errors.Is(aerr, ledger.ErrNotFound) {
				return AssetSummary{}, aerr
			}
		}
	} else {
		// UnknownPrediction must not crash the request; it falls through
		// to snapshot matching below.
		s.logger.Warn("prediction class not registered in mapping",
			zap.Int("class", class))
	}

	// The predicted asset lost the race or was unusable. Re-candidate
	// from a fresh snapshot, revalidating each pick with the ledger, up
	// to the retry cap.
	for attempt := 0; attempt < s.policy.MaxCandidateRetries; attempt++ {
		candidates, ferr := s.ledger.FindAvailableMatching(ctx, bson.M{})
		if ferr != nil {
			return AssetSummary{}, ferr
		}

		var next *models.Laptop
		for i := range candidates {
			if !tried[candidates[i].ID.Hex()] {
				next = &candidates[i]
				break
			}
		}
		if next == nil {
			break
		}

		tried[next.ID.Hex()] = true
		summary, aerr := s.claimAssignment(ctx, employeeID, next.ID)
		if aerr == nil {
			return summary, nil
		}
		if !errors.Is(aerr, ledger.ErrConflict) && !errors.Is(aerr, ledger.ErrNotFound) {
			return AssetSummary{}, aerr
		}
	}

	return AssetSummary{}, ErrNoCandidate
}

// claimAssignment performs the Available -> Assigned transition and, only
// after it succeeds, opens the assignment claim on the same goroutine so
// the window between transition and record stays bounded.
func (s *Service) claimAssignment(ctx context.Context, employeeID primitive.ObjectID, assetID primitive.ObjectID) (AssetSummary, error) {
	if err := s.ledger.TryTransition(ctx, assetID, ledger.StatusAvailable, ledger.StatusAssigned); err != nil {
		return AssetSummary{}, err
	}
	if _, err := s.claims.OpenAssignment(ctx, &employeeID, assetID); err != nil {
		s.rollbackTransition(ctx, assetID, ledger.StatusAssigned, ledger.StatusAvailable)
		return AssetSummary{}, err
	}
	laptop, err := s.ledger.Get(ctx, assetID)
	if err != nil {
		return AssetSummary{}, err
	}
	s.events.AssetAssigned(assetID.Hex(), employeeID.Hex())
	return summarize(laptop), nil
}

// rollbackTransition undoes a transition whose claim write failed, so an
// asset is never left granted with no record tracking who holds it. The
// rollback itself is a compare-and-set: if something else already moved
// the asset on, that takes precedence and the miss is only logged.
func (s *Service) rollbackTransition(ctx context.Context, assetID primitive.ObjectID, from, to ledger.Status) {
	if err := s.ledger.TryTransition(ctx, assetID, from, to); err != nil {
		s.logger.Error("could not roll back transition after claim write failure",
			zap.String("assetId", assetID.Hex()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.Error(err))
	}
}

// Reserve places a hold on a specific laptop for an employee. A conflict on
// the Available -> Reserved transition surfaces as ErrNotAvailable.
func (s *Service) Reserve(ctx context.Context, employeeName, assetHex string) error {
	emp, err := s.employeeByName(ctx, employeeName)
	if err != nil {
		return err
	}

	assetID, err := primitive.ObjectIDFromHex(assetHex)
	if err != nil {
		return ErrNotFound
	}
	if _, err := s.ledger.Get(ctx, assetID); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.ledger.TryTransition(ctx, assetID, ledger.StatusAvailable, ledger.StatusReserved); err != nil {
		if errors.Is(err, ledger.ErrConflict) {
			return ErrNotAvailable
		}
		if errors.Is(err, ledger.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if _, err := s.claims.OpenReservation(ctx, emp.ID, assetID); err != nil {
		s.rollbackTransition(ctx, assetID, ledger.StatusReserved, ledger.StatusAvailable)
		return err
	}
	s.events.AssetReserved(assetID.Hex(), emp.ID.Hex())
	return nil
}

// Onboard creates the employee record and immediately runs the recommend
// flow with the declared requirement profile. The employee is kept even
// when no laptop can be granted.
func (s *Service) Onboard(ctx context.Context, profile Profile) (AssetSummary, error) {
	emp := models.Employee{
		ID:              primitive.NewObjectID(),
		Name:            profile.Name,
		Email:           profile.Email,
		Role:            profile.Role,
		ExperienceLevel: profile.ExperienceLevel,
		Age:             profile.Age,
		DateJoined:      time.Now().UTC(),
	}
	if err := s.employees.InsertOne(ctx, emp); err != nil {
		return AssetSummary{}, errors.Wrap(err, "failed to create employee")
	}

	attrs := feature.Attributes{
		Role:            profile.Role,
		ExperienceLevel: profile.ExperienceLevel,
		Age:             strconv.Itoa(profile.Age),
		CPU:             profile.Requirements.CPU,
		RAM:             profile.Requirements.RAM,
		Storage:         profile.Requirements.Storage,
		Graphics:        profile.Requirements.Graphics,
	}
	return s.assignByPrediction(ctx, emp.ID, attrs)
}

// Offboard returns every laptop the employee holds. Each assignment is
// processed independently: a failed transition is logged and skipped so one
// out-of-sync asset cannot block the rest of the batch.
func (s *Service) Offboard(ctx context.Context, employeeHex string) error {
	employeeID, err := primitive.ObjectIDFromHex(employeeHex)
	if err != nil {
		return ErrNotFound
	}

	open, err := s.claims.OpenAssignmentsForEmployee(ctx, employeeID)
	if err != nil {
		return err
	}

	for _, asg := range open {
		if terr := s.ledger.TryTransition(ctx, asg.LaptopID, ledger.StatusAssigned, ledger.StatusAvailable); terr != nil {
			s.logger.Error("offboarding: could not return asset",
				zap.String("assetId", asg.LaptopID.Hex()),
				zap.String("assignmentId", asg.ID),
				zap.Error(terr))
			continue
		}
		if cerr := s.claims.CloseAssignment(ctx, asg.ID); cerr != nil {
			s.logger.Error("offboarding: could not close assignment",
				zap.String("assignmentId", asg.ID), zap.Error(cerr))
			continue
		}
		s.events.AssetReturned(asg.LaptopID.Hex(), employeeID.Hex())
	}

	// A dangling hold keeps the asset stuck in Reserved forever; cancel
	// it on the way out.
	if res, rerr := s.claims.OpenReservationForEmployee(ctx, employeeID); rerr == nil {
		if terr := s.ledger.TryTransition(ctx, res.LaptopID, ledger.StatusReserved, ledger.StatusAvailable); terr != nil {
			s.logger.Error("offboarding: could not release reserved asset",
				zap.String("assetId", res.LaptopID.Hex()), zap.Error(terr))
		} else if cerr := s.claims.CloseReservation(ctx, res.ID, models.ReservationCancelled); cerr != nil {
			s.logger.Error("offboarding: could not cancel reservation",
				zap.String("reservationId", res.ID), zap.Error(cerr))
		}
	}

	return nil
}

func (s *Service) employeeByName(ctx context.Context, name string) (models.Employee, error) {
	var emp models.Employee
	err := s.employees.FindOne(ctx, bson.M{"name": name}, &emp)
	if err == store.ErrNoDocument {
		return models.Employee{}, ErrNotFound
	}
	if err != nil {
		return models.Employee{}, errors.Wrap(err, "failed to load employee")
	}
	return emp, nil
}

func summarize(laptop models.Laptop) AssetSummary {
	return AssetSummary{
		LaptopID:       laptop.ID.Hex(),
		SerialNumber:   laptop.SerialNumber,
		Model:          laptop.Model,
		Brand:          laptop.Brand,
		Specifications: laptop.Specifications,
	}
}
