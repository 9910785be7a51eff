package assistant

import (
	"context"
	"fmt"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/audit"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/menu"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

// ActionApplier is the single dispatcher that applies a pending action's
// payload by kind and writes the audit record for it
type ActionApplier struct {
	menuRepo  menu.Repository
	auditRepo audit.Repository
	logger    logger.Logger
}

// NewActionApplier creates an ActionApplier
func NewActionApplier(menuRepo menu.Repository, auditRepo audit.Repository, log logger.Logger) *ActionApplier {
	return &ActionApplier{
		menuRepo:  menuRepo,
		auditRepo: auditRepo,
		logger:    log,
	}
}

// Apply executes the action payload. The payload is applied verbatim — for
// price updates the frozen NewPrice values from the preview, never a
// recomputation.
func (a *ActionApplier) Apply(ctx context.Context, action *PendingAction) (*ActionResult, error) {
	switch action.Kind {
	case ActionPriceUpdate:
		return a.applyPriceUpdate(ctx, action)
	case ActionAvailabilityToggle:
		return a.applyAvailabilityToggle(ctx, action)
	default:
		return nil, fmt.Errorf("unsupported action kind %q", action.Kind)
	}
}

func (a *ActionApplier) applyPriceUpdate(ctx context.Context, action *PendingAction) (*ActionResult, error) {
	updates := make([]menu.PriceUpdate, 0, len(action.PriceChanges))
	for _, change := range action.PriceChanges {
		updates = append(updates, menu.PriceUpdate{ItemID: change.ItemID, NewPrice: change.NewPrice})
	}

	count, err := a.menuRepo.ApplyPriceUpdates(ctx, action.RestaurantID, updates)
	if err != nil {
		return nil, fmt.Errorf("error applying price updates: %w", err)
	}

	a.recordAudit(ctx, action, "MENU_PRICE_UPDATE", "menu_item",
		before(action.PriceChanges), after(action.PriceChanges))

	return &ActionResult{
		UpdatedCount: count,
		Message:      fmt.Sprintf("Successfully updated %d item(s).", count),
	}, nil
}

func (a *ActionApplier) applyAvailabilityToggle(ctx context.Context, action *PendingAction) (*ActionResult, error) {
	items, err := a.menuRepo.SetAvailability(ctx, action.RestaurantID, action.ItemIDs, action.Available)
	if err != nil {
		return nil, fmt.Errorf("error toggling availability: %w", err)
	}

	a.recordAudit(ctx, action, "MENU_AVAILABILITY_TOGGLE", "menu_item",
		map[string]interface{}{"item_ids": action.ItemIDs, "available": !action.Available},
		map[string]interface{}{"item_ids": action.ItemIDs, "available": action.Available})

	return &ActionResult{
		UpdatedCount: len(items),
		Message:      fmt.Sprintf("Availability updated for %d item(s).", len(items)),
	}, nil
}

// recordAudit is fire-and-forget from the mutation's perspective: a failed
// audit write is logged but does not undo or fail the confirmed change
func (a *ActionApplier) recordAudit(ctx context.Context, action *PendingAction, actionType, targetEntity string, previous, next interface{}) {
	rec := &audit.Record{
		RestaurantID:  action.RestaurantID,
		UserID:        action.UserID,
		ActionType:    actionType,
		TargetEntity:  targetEntity,
		PreviousValue: previous,
		NewValue:      next,
		IsConfirmed:   true,
	}
	if err := a.auditRepo.Save(ctx, rec); err != nil {
		a.logger.Error("error writing audit record",
			"action_type", actionType,
			"restaurant_id", action.RestaurantID,
			"error", err)
	}
}

func before(changes []PriceChange) map[string]interface{} {
	prices := make(map[string]float64, len(changes))
	for _, c := range changes {
		prices[c.ItemID] = c.OldPrice
	}
	return map[string]interface{}{"prices": prices}
}

func after(changes []PriceChange) map[string]interface{} {
	prices := make(map[string]float64, len(changes))
	for _, c := range changes {
		prices[c.ItemID] = c.NewPrice
	}
	return map[string]interface{}{"prices": prices}
}
