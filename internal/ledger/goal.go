package ledger

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/service"
)

// GoalInput carries the caller-supplied fields of a savings goal.
type GoalInput struct {
	Deadline    time.Time
	Description string
	TargetValue model.Money
}

// GoalService manages savings goals and their lifecycle. A goal's status is
// never set directly by callers: it is derived from the current value,
// target, and deadline after every mutation, and the derived value is
// persisted so reports can tally it without recomputing.
type GoalService struct {
	store service.Storage
	now   func() time.Time
}

// NewGoalService creates a goal service backed by the given storage.
func NewGoalService(store service.Storage) *GoalService {
	return &GoalService{store: store, now: time.Now}
}

// Create registers a new goal. The status is derived immediately, so a goal
// created with a deadline already in the past starts out expired.
func (s *GoalService) Create(ctx context.Context, ownerID int64, input GoalInput) (*model.Goal, error) {
	goal := &model.Goal{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(input.Description),
		TargetValue: input.TargetValue,
		Deadline:    input.Deadline,
		OwnerID:     ownerID,
	}
	goal.Status = goal.DeriveStatus(s.now())

	if err := goal.Validate(); err != nil {
		return nil, common.Validationf("%v", err)
	}

	created, err := s.store.CreateGoal(ctx, goal)
	if err != nil {
		return nil, err
	}

	slog.Info("goal created", "id", created.ID, "status", created.Status)
	return created, nil
}

// List returns all the owner's live goals.
func (s *GoalService) List(ctx context.Context, ownerID int64) ([]model.Goal, error) {
	return s.store.GetGoals(ctx, ownerID)
}

// ListByStatus returns the owner's live goals in one lifecycle state, as
// last persisted.
func (s *GoalService) ListByStatus(ctx context.Context, ownerID int64, status model.GoalStatus) ([]model.Goal, error) {
	return s.store.GetGoalsByStatus(ctx, ownerID, status)
}

// CountByStatus counts the owner's live goals in one lifecycle state.
func (s *GoalService) CountByStatus(ctx context.Context, ownerID int64, status model.GoalStatus) (int64, error) {
	return s.store.CountGoalsByStatus(ctx, ownerID, status)
}

// Get returns one of the owner's live goals.
func (s *GoalService) Get(ctx context.Context, ownerID int64, id string) (*model.Goal, error) {
	goal, err := s.store.GetGoalByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, common.NotFoundf("goal %s", id)
	}
	return goal, nil
}

// Search returns the owner's live goals matching a description fragment.
func (s *GoalService) Search(ctx context.Context, ownerID int64, query string) ([]model.Goal, error) {
	return s.store.SearchGoals(ctx, ownerID, query)
}

// Update rewrites a goal's description, target, and deadline, then
// re-derives its status. Saved progress is kept.
func (s *GoalService) Update(ctx context.Context, ownerID int64, id string, input GoalInput) (*model.Goal, error) {
	goal, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	goal.Description = strings.TrimSpace(input.Description)
	goal.TargetValue = input.TargetValue
	goal.Deadline = input.Deadline

	return s.persistDerived(ctx, goal)
}

// SetProgress replaces the goal's saved amount with an absolute value.
func (s *GoalService) SetProgress(ctx context.Context, ownerID int64, id string, value model.Money) (*model.Goal, error) {
	if value.IsNegative() {
		return nil, common.Validationf("progress value cannot be negative")
	}

	goal, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	goal.CurrentValue = value
	return s.persistDerived(ctx, goal)
}

// AddProgress shifts the goal's saved amount by a delta. The delta may be
// negative to record a withdrawal; it is applied as given.
func (s *GoalService) AddProgress(ctx context.Context, ownerID int64, id string, delta model.Money) (*model.Goal, error) {
	goal, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	goal.CurrentValue = goal.CurrentValue.Add(delta)
	return s.persistDerived(ctx, goal)
}

// Progress reports how far along a goal is, as a percentage of its target.
func (s *GoalService) Progress(ctx context.Context, ownerID int64, id string) (model.Percent, error) {
	goal, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return model.Percent{}, err
	}
	return goal.ProgressPercent(), nil
}

// Delete retires a goal.
func (s *GoalService) Delete(ctx context.Context, ownerID int64, id string) error {
	if err := s.store.DeleteGoal(ctx, id, ownerID); err != nil {
		return err
	}
	slog.Info("goal retired", "id", id)
	return nil
}

// SweepExpired marks the owner's overdue, unachieved goals as expired and
// returns how many were updated. Each goal is persisted on its own; a
// failure partway leaves the earlier updates in place and reports the count
// reached alongside the error.
func (s *GoalService) SweepExpired(ctx context.Context, ownerID int64) (int, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	overdue, err := s.store.GetUnachievedGoalsPastDeadline(ctx, ownerID, today)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range overdue {
		goal := &overdue[i]
		if goal.Status == model.GoalExpired {
			continue
		}
		goal.Status = model.GoalExpired
		if err := s.store.UpdateGoal(ctx, goal); err != nil {
			return updated, err
		}
		updated++
	}

	if updated > 0 {
		slog.Info("expired overdue goals", "count", updated)
	}
	return updated, nil
}

// persistDerived derives the goal's status from its mutated fields and
// writes the whole row back.
func (s *GoalService) persistDerived(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	if err := goal.Validate(); err != nil {
		return nil, common.Validationf("%v", err)
	}

	goal.Status = goal.DeriveStatus(s.now())

	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}

	slog.Debug("goal updated", "id", goal.ID, "status", goal.Status)
	return goal, nil
}
