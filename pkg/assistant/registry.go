package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

// DefaultActionTTL bounds how long a previewed mutation stays confirmable
const DefaultActionTTL = 10 * time.Minute

// ErrActionNotFound is returned by Confirm for unknown, expired or
// already-resolved action ids. Callers surface it as {success: false}, never
// as a transport fault.
var ErrActionNotFound = errors.New("pending action not found or expired")

// ActionKind tags the payload variant of a pending action
type ActionKind string

const (
	ActionPriceUpdate        ActionKind = "PRICE_UPDATE"
	ActionAvailabilityToggle ActionKind = "AVAILABILITY_TOGGLE"
)

// PriceChange is one proposed item price change, frozen at preview time. The
// confirm path applies NewPrice verbatim, it never recomputes.
type PriceChange struct {
	ItemID   string  `json:"itemId"`
	ItemName string  `json:"itemName"`
	OldPrice float64 `json:"oldPrice"`
	NewPrice float64 `json:"newPrice"`
}

// PendingAction is a previewed mutation awaiting explicit confirmation. The
// payload is an explicit tagged variant rather than a closure so the action is
// inspectable and carries exactly what the preview showed.
type PendingAction struct {
	ID           string
	Kind         ActionKind
	RestaurantID string
	UserID       string
	CreatedAt    time.Time

	// PRICE_UPDATE payload
	PriceChanges []PriceChange

	// AVAILABILITY_TOGGLE payload
	ItemIDs   []string
	Available bool
}

// ActionResult is what a confirmed action reports back
type ActionResult struct {
	UpdatedCount int    `json:"updated_count"`
	Message      string `json:"message"`
}

// Applier executes a pending action's payload against the domain services
type Applier interface {
	Apply(ctx context.Context, action *PendingAction) (*ActionResult, error)
}

// Registry holds pending actions until they are confirmed, cancelled or
// expired. It is the only shared mutable state in the assistant core and is
// safe for concurrent use; confirm evicts before executing so a racing second
// confirm can never run the mutation twice.
type Registry struct {
	mu      sync.Mutex
	actions map[string]*PendingAction

	applier Applier
	ttl     time.Duration
	logger  logger.Logger
	now     func() time.Time
}

// NewRegistry creates a Registry. A non-positive ttl falls back to
// DefaultActionTTL.
func NewRegistry(applier Applier, ttl time.Duration, log logger.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultActionTTL
	}
	return &Registry{
		actions: make(map[string]*PendingAction),
		applier: applier,
		ttl:     ttl,
		logger:  log,
		now:     time.Now,
	}
}

// Register stores an action and returns its freshly minted id. Nothing is
// executed.
func (r *Registry) Register(action *PendingAction) string {
	action.ID = uuid.New().String()
	action.CreatedAt = r.now()

	r.mu.Lock()
	r.actions[action.ID] = action
	r.mu.Unlock()

	r.logger.Info("pending action registered",
		"action_id", action.ID,
		"kind", action.Kind,
		"restaurant_id", action.RestaurantID)
	return action.ID
}

// Confirm executes a pending action exactly once. The action is evicted
// before the applier runs, so a failed apply is not retryable and a
// concurrent confirm on the same id gets ErrActionNotFound.
func (r *Registry) Confirm(ctx context.Context, id string) (*ActionResult, error) {
	action := r.take(id)
	if action == nil {
		return nil, ErrActionNotFound
	}

	result, err := r.applier.Apply(ctx, action)
	if err != nil {
		r.logger.Error("pending action failed to apply",
			"action_id", id,
			"kind", action.Kind,
			"error", err)
		return nil, err
	}

	r.logger.Info("pending action confirmed",
		"action_id", id,
		"kind", action.Kind,
		"updated", result.UpdatedCount)
	return result, nil
}

// Cancel evicts an action without executing it and reports whether it was
// still live
func (r *Registry) Cancel(id string) bool {
	return r.take(id) != nil
}

// take removes and returns a live action, treating expired entries exactly
// like absent ones
func (r *Registry) take(id string) *PendingAction {
	r.mu.Lock()
	defer r.mu.Unlock()

	action, ok := r.actions[id]
	if !ok {
		return nil
	}
	delete(r.actions, id)

	if r.now().Sub(action.CreatedAt) > r.ttl {
		return nil
	}
	return action
}

// Sweep evicts expired actions and returns how many were removed
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, action := range r.actions {
		if r.now().Sub(action.CreatedAt) > r.ttl {
			delete(r.actions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep periodically until the context is cancelled
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Sweep(); n > 0 {
					r.logger.Debug("expired pending actions swept", "count", n)
				}
			}
		}
	}()
}
