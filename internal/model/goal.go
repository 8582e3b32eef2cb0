package model

import (
	"fmt"
	"strings"
	"time"
)

// GoalStatus tracks where a savings goal stands. The set is closed.
type GoalStatus string

const (
	// GoalInProgress is the initial status of every goal.
	GoalInProgress GoalStatus = "IN_PROGRESS"
	// GoalAchieved means the current value reached the target.
	GoalAchieved GoalStatus = "ACHIEVED"
	// GoalExpired means the deadline passed before the target was reached.
	GoalExpired GoalStatus = "EXPIRED"
)

// ParseGoalStatus converts user input to a GoalStatus.
func ParseGoalStatus(s string) (GoalStatus, error) {
	switch GoalStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case GoalInProgress:
		return GoalInProgress, nil
	case GoalAchieved:
		return GoalAchieved, nil
	case GoalExpired:
		return GoalExpired, nil
	default:
		return "", fmt.Errorf("unknown goal status %q", s)
	}
}

// Goal is a savings target with a deadline. Its status is derived from the
// current data after every mutation and persisted; it is never append-only
// history.
type Goal struct {
	Deadline     time.Time
	CreatedAt    time.Time
	ID           string
	Description  string
	Status       GoalStatus
	TargetValue  Money
	CurrentValue Money
	OwnerID      int64
	IsActive     bool
}

// IsAchieved reports whether the current value reached the target.
func (g *Goal) IsAchieved() bool {
	return g.CurrentValue.Cents >= g.TargetValue.Cents
}

// IsExpiredAt reports whether the deadline passed without achievement.
// Achievement always wins: a goal reached after its deadline is not expired.
func (g *Goal) IsExpiredAt(today time.Time) bool {
	return dateOnly(today).After(dateOnly(g.Deadline)) && !g.IsAchieved()
}

// DeriveStatus recomputes the status from the goal's current data.
// The achievement predicate is checked before the expiry predicate.
func (g *Goal) DeriveStatus(today time.Time) GoalStatus {
	switch {
	case g.IsAchieved():
		return GoalAchieved
	case g.IsExpiredAt(today):
		return GoalExpired
	default:
		return GoalInProgress
	}
}

// ProgressPercent returns the completion percentage with four fractional
// digits, rounded half-up. A zero target is defined as zero progress so the
// division is never attempted.
func (g *Goal) ProgressPercent() Percent {
	if g.TargetValue.Cents == 0 {
		return Percent{}
	}
	// current/target scaled to percent with 4 fractional digits is
	// current*1e6/target; add half the divisor before dividing for half-up.
	num := g.CurrentValue.Cents * 1_000_000
	den := g.TargetValue.Cents
	scaled := (num + den/2) / den
	return Percent{Scaled: scaled}
}

// Validate checks the goal's own field invariants.
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if len(g.Description) > 100 {
		return fmt.Errorf("description too long (max 100 characters)")
	}
	if err := g.TargetValue.Validate(); err != nil {
		return fmt.Errorf("target value must be positive: %w", err)
	}
	if g.Deadline.IsZero() {
		return fmt.Errorf("deadline is required")
	}
	return nil
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
