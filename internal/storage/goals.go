package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

const goalColumns = `id, description, target_cents, current_cents, deadline, status, owner_id, is_active, created_at`

func scanGoal(row interface{ Scan(...any) error }) (*model.Goal, error) {
	var (
		goal    model.Goal
		target  int64
		current int64
	)
	err := row.Scan(&goal.ID, &goal.Description, &target, &current,
		&goal.Deadline, &goal.Status, &goal.OwnerID, &goal.IsActive, &goal.CreatedAt)
	if err != nil {
		return nil, err
	}
	goal.TargetValue = model.Money{Cents: target}
	goal.CurrentValue = model.Money{Cents: current}
	return &goal, nil
}

// CreateGoal inserts a new savings goal.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	if err := validateGoal(ctx, goal); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO goals (id, description, target_cents, current_cents, deadline, status, owner_id, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)`

	_, err := s.db.ExecContext(ctx, query,
		goal.ID, goal.Description, goal.TargetValue.Cents, goal.CurrentValue.Cents,
		goal.Deadline.UTC(), string(goal.Status), goal.OwnerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert goal: %w", err)
	}

	created := *goal
	created.IsActive = true
	created.CreatedAt = now

	slog.Debug("created goal",
		"id", created.ID, "target", created.TargetValue, "status", created.Status)
	return &created, nil
}

// GetGoals returns all the owner's live goals, soonest deadline first.
func (s *SQLiteStorage) GetGoals(ctx context.Context, ownerID int64) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE owner_id = ? AND is_active = 1
		ORDER BY deadline, created_at`

	return s.queryGoals(ctx, query, ownerID)
}

// GetGoalsByStatus returns the owner's live goals in one lifecycle state.
func (s *SQLiteStorage) GetGoalsByStatus(ctx context.Context, ownerID int64, status model.GoalStatus) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE owner_id = ? AND status = ? AND is_active = 1
		ORDER BY deadline, created_at`

	return s.queryGoals(ctx, query, ownerID, string(status))
}

// GetUnachievedGoalsPastDeadline returns live goals whose deadline falls
// strictly before the given instant and that are not yet marked achieved.
// The expiry sweep works through this set.
func (s *SQLiteStorage) GetUnachievedGoalsPastDeadline(ctx context.Context, ownerID int64, before time.Time) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE owner_id = ? AND is_active = 1
		  AND deadline < ?
		  AND status != ?
		ORDER BY deadline, created_at`

	return s.queryGoals(ctx, query, ownerID, before.UTC(), string(model.GoalAchieved))
}

// GetGoalByID returns the owner's live goal, or (nil, nil).
func (s *SQLiteStorage) GetGoalByID(ctx context.Context, id string, ownerID int64) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "goal id"); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE id = ? AND owner_id = ? AND is_active = 1`

	goal, err := scanGoal(s.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query goal: %w", err)
	}

	return goal, nil
}

// SearchGoals returns live goals whose description contains the query,
// case-insensitively.
func (s *SQLiteStorage) SearchGoals(ctx context.Context, ownerID int64, query string) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(ownerID); err != nil {
		return nil, err
	}
	if err := validateString(query, "search query"); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE owner_id = ? AND is_active = 1 AND description LIKE ? COLLATE NOCASE
		ORDER BY deadline, created_at`

	return s.queryGoals(ctx, sqlQuery, ownerID, "%"+query+"%")
}

// UpdateGoal persists changes to a live goal, including its derived status.
func (s *SQLiteStorage) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateGoal(ctx, goal); err != nil {
		return err
	}

	query := `
		UPDATE goals
		SET description = ?, target_cents = ?, current_cents = ?, deadline = ?, status = ?
		WHERE id = ? AND owner_id = ? AND is_active = 1`

	result, err := s.db.ExecContext(ctx, query,
		goal.Description, goal.TargetValue.Cents, goal.CurrentValue.Cents,
		goal.Deadline.UTC(), string(goal.Status), goal.ID, goal.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return common.NotFoundf("goal %s", goal.ID)
	}

	slog.Debug("updated goal", "id", goal.ID, "status", goal.Status)
	return nil
}

// DeleteGoal retires a live goal.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, id string, ownerID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "goal id"); err != nil {
		return err
	}
	if err := validateOwner(ownerID); err != nil {
		return err
	}

	query := `
		UPDATE goals
		SET is_active = 0
		WHERE id = ? AND owner_id = ? AND is_active = 1`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return common.NotFoundf("goal %s", id)
	}

	slog.Debug("retired goal", "id", id)
	return nil
}

// CountGoals counts all the owner's live goals.
func (s *SQLiteStorage) CountGoals(ctx context.Context, ownerID int64) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}

	var count int64
	query := `SELECT COUNT(*) FROM goals WHERE owner_id = ? AND is_active = 1`
	if err := s.db.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count goals: %w", err)
	}

	return count, nil
}

// CountGoalsByStatus counts the owner's live goals in one lifecycle state.
func (s *SQLiteStorage) CountGoalsByStatus(ctx context.Context, ownerID int64, status model.GoalStatus) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateOwner(ownerID); err != nil {
		return 0, err
	}

	var count int64
	query := `SELECT COUNT(*) FROM goals WHERE owner_id = ? AND status = ? AND is_active = 1`
	if err := s.db.QueryRowContext(ctx, query, ownerID, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count goals by status: %w", err)
	}

	return count, nil
}

func (s *SQLiteStorage) queryGoals(ctx context.Context, query string, args ...any) ([]model.Goal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}
