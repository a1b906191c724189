package goals

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/store"
)

// Engine keeps the persisted goal list in step with the ledger.
type Engine struct {
	store  store.Store
	now    func() time.Time
	logger *zap.Logger
}

// NewEngine creates an Engine. now defaults to time.Now.
func NewEngine(s store.Store, now func() time.Time, logger *zap.Logger) *Engine {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: s, now: now, logger: logger.Named("goals")}
}

// Refresh reads the goals and the ledger, recomputes every active goal, and
// writes the goals back when anything changed.
func (e *Engine) Refresh(ctx context.Context) ([]model.Goal, error) {
	goals, err := e.store.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}
	return e.refresh(ctx, goals)
}

func (e *Engine) refresh(ctx context.Context, goals []model.Goal) ([]model.Goal, error) {
	if len(goals) == 0 {
		return goals, nil
	}

	records, err := e.store.LoadSolved(ctx)
	if err != nil {
		return nil, err
	}

	updated, changed := Evaluate(goals, TakeSnapshot(records, e.now()))
	if !changed {
		return updated, nil
	}

	for i := range updated {
		if updated[i].Status != goals[i].Status {
			e.logger.Debug("goal status changed",
				zap.Int("id", updated[i].ID),
				zap.String("from", string(goals[i].Status)),
				zap.String("to", string(updated[i].Status)),
			)
		}
	}

	if err := e.store.SaveGoals(ctx, updated); err != nil {
		return nil, fmt.Errorf("saving goals: %w", err)
	}
	return updated, nil
}

// Create validates and stores a new goal, then refreshes all goals so the
// new one starts with its current value.
func (e *Engine) Create(ctx context.Context, g NewGoal) (model.Goal, error) {
	today := model.DateOf(e.now())
	if err := Validate(g, today); err != nil {
		return model.Goal{}, err
	}

	goals, err := e.store.LoadGoals(ctx)
	if err != nil {
		return model.Goal{}, err
	}

	goal := Build(NextID(goals), g, today)
	goals = append(goals, goal)
	if err := e.store.SaveGoals(ctx, goals); err != nil {
		return model.Goal{}, fmt.Errorf("saving goals: %w", err)
	}
	e.logger.Debug("goal created", zap.Int("id", goal.ID), zap.String("type", string(goal.Type)))

	refreshed, err := e.refresh(ctx, goals)
	if err != nil {
		return model.Goal{}, err
	}
	return refreshed[len(refreshed)-1], nil
}

// Bootstrap creates the starter goals when no goal has ever been stored.
// It reports whether it created anything.
func (e *Engine) Bootstrap(ctx context.Context) ([]model.Goal, bool, error) {
	goals, err := e.store.LoadGoals(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(goals) > 0 {
		refreshed, err := e.refresh(ctx, goals)
		return refreshed, false, err
	}

	starters := StarterGoals(model.DateOf(e.now()))
	if err := e.store.SaveGoals(ctx, starters); err != nil {
		return nil, false, fmt.Errorf("saving starter goals: %w", err)
	}
	e.logger.Debug("starter goals created", zap.Int("count", len(starters)))

	refreshed, err := e.refresh(ctx, starters)
	return refreshed, true, err
}
