package assistant

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

// countingApplier counts Apply calls and optionally fails
type countingApplier struct {
	calls int32
	err   error
}

func (a *countingApplier) Apply(ctx context.Context, action *PendingAction) (*ActionResult, error) {
	atomic.AddInt32(&a.calls, 1)
	if a.err != nil {
		return nil, a.err
	}
	return &ActionResult{UpdatedCount: len(action.PriceChanges), Message: "ok"}, nil
}

func newTestRegistry(applier Applier, ttl time.Duration) *Registry {
	return NewRegistry(applier, ttl, logger.NewNop())
}

func TestRegistryConfirmExecutesOnce(t *testing.T) {
	applier := &countingApplier{}
	registry := newTestRegistry(applier, DefaultActionTTL)

	id := registry.Register(&PendingAction{
		Kind:         ActionPriceUpdate,
		RestaurantID: "r1",
		PriceChanges: []PriceChange{{ItemID: "i1", NewPrice: 100}},
	})
	require.NotEmpty(t, id)

	result, err := registry.Confirm(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedCount)

	_, err = registry.Confirm(context.Background(), id)
	assert.ErrorIs(t, err, ErrActionNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&applier.calls))
}

func TestRegistryConfirmUnknownID(t *testing.T) {
	registry := newTestRegistry(&countingApplier{}, DefaultActionTTL)

	_, err := registry.Confirm(context.Background(), "no-such-action")
	assert.ErrorIs(t, err, ErrActionNotFound)
}

func TestRegistryConcurrentConfirm(t *testing.T) {
	applier := &countingApplier{}
	registry := newTestRegistry(applier, DefaultActionTTL)

	id := registry.Register(&PendingAction{Kind: ActionPriceUpdate})

	const goroutines = 16
	var wg sync.WaitGroup
	var successes int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := registry.Confirm(context.Background(), id); err == nil {
				atomic.AddInt32(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&successes))
	assert.Equal(t, int32(1), atomic.LoadInt32(&applier.calls))
}

func TestRegistryCancelIsTerminal(t *testing.T) {
	applier := &countingApplier{}
	registry := newTestRegistry(applier, DefaultActionTTL)

	id := registry.Register(&PendingAction{Kind: ActionPriceUpdate})

	assert.True(t, registry.Cancel(id))
	assert.False(t, registry.Cancel(id))

	_, err := registry.Confirm(context.Background(), id)
	assert.ErrorIs(t, err, ErrActionNotFound)
	assert.Equal(t, int32(0), atomic.LoadInt32(&applier.calls))
}

func TestRegistryFailedApplyIsNotRetryable(t *testing.T) {
	applyErr := errors.New("database down")
	applier := &countingApplier{err: applyErr}
	registry := newTestRegistry(applier, DefaultActionTTL)

	id := registry.Register(&PendingAction{Kind: ActionPriceUpdate})

	_, err := registry.Confirm(context.Background(), id)
	require.ErrorIs(t, err, applyErr)

	// the action was evicted before execution, a retry sees it as gone
	_, err = registry.Confirm(context.Background(), id)
	assert.ErrorIs(t, err, ErrActionNotFound)
}

func TestRegistryExpiredActionBehavesLikeAbsent(t *testing.T) {
	applier := &countingApplier{}
	registry := newTestRegistry(applier, 10*time.Minute)

	current := time.Now()
	registry.now = func() time.Time { return current }

	id := registry.Register(&PendingAction{Kind: ActionPriceUpdate})

	current = current.Add(10*time.Minute + time.Second)

	_, err := registry.Confirm(context.Background(), id)
	assert.ErrorIs(t, err, ErrActionNotFound)
	assert.Equal(t, int32(0), atomic.LoadInt32(&applier.calls))
}

func TestRegistrySweep(t *testing.T) {
	registry := newTestRegistry(&countingApplier{}, 10*time.Minute)

	current := time.Now()
	registry.now = func() time.Time { return current }

	registry.Register(&PendingAction{Kind: ActionPriceUpdate})
	registry.Register(&PendingAction{Kind: ActionAvailabilityToggle})

	assert.Equal(t, 0, registry.Sweep())

	current = current.Add(11 * time.Minute)
	fresh := registry.Register(&PendingAction{Kind: ActionPriceUpdate})

	assert.Equal(t, 2, registry.Sweep())

	// the fresh action survives the sweep and is still confirmable
	_, err := registry.Confirm(context.Background(), fresh)
	assert.NoError(t, err)
}
