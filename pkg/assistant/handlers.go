package assistant

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/table"
)

// Preview is the exact set of proposed changes shown to the user before
// confirmation
type Preview struct {
	Type     ActionKind    `json:"type"`
	Changes  []PriceChange `json:"changes"`
	ActionID string        `json:"actionId"`
}

// Response is the assistant's answer to one user turn
type Response struct {
	Message              string   `json:"message"`
	Intent               Intent   `json:"intent"`
	RequiresConfirmation bool     `json:"requiresConfirmation"`
	Preview              *Preview `json:"preview,omitempty"`
	ConversationID       string   `json:"conversationId,omitempty"`
}

// round2 rounds to 2 decimal places, the precision of all money values
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// computeNewPrice applies the price rule: delta is P*V/100 for percentages,
// V otherwise; INCREMENT adds, DECREMENT subtracts, SET assigns V directly.
// The result is floored at zero and rounded to 2 decimals.
func computeNewPrice(current float64, modifier PriceModifier, value float64, isPercentage bool) float64 {
	var newPrice float64
	switch modifier {
	case ModifierSet:
		newPrice = value
	case ModifierDecrement:
		newPrice = current - priceDelta(current, value, isPercentage)
	default:
		newPrice = current + priceDelta(current, value, isPercentage)
	}
	if newPrice < 0 {
		newPrice = 0
	}
	return round2(newPrice)
}

func priceDelta(current, value float64, isPercentage bool) float64 {
	if isPercentage {
		return current * value / 100
	}
	return value
}

// handlePriceUpdate resolves the target, computes the full preview eagerly and
// registers a pending action carrying exactly those changes. Bulk price
// changes always require confirmation.
func (s *Service) handlePriceUpdate(ctx context.Context, restaurantID, userID string, cmd ParsedCommand) (*Response, error) {
	target := cmd.Entities.String("target")
	modifier := PriceModifier(cmd.Entities.String("modifier"))
	value := cmd.Entities.Float("value")
	isPercentage := cmd.Entities.Bool("is_percentage")

	if target == "" {
		return &Response{
			Message: "Which items or category should I update?",
			Intent:  IntentMenuPriceUpdate,
		}, nil
	}
	if modifier == "" {
		modifier = ModifierIncrement
	}

	items, err := s.menuRepo.FindItemsByCategoryNameOrIDs(ctx, restaurantID, target)
	if err != nil {
		return nil, fmt.Errorf("error finding items for %q: %w", target, err)
	}
	if len(items) == 0 {
		return &Response{
			Message: fmt.Sprintf("Couldn't find any items matching '%s'.", target),
			Intent:  IntentMenuPriceUpdate,
		}, nil
	}

	changes := make([]PriceChange, 0, len(items))
	for _, item := range items {
		changes = append(changes, PriceChange{
			ItemID:   item.ID,
			ItemName: item.Name,
			OldPrice: item.BasePrice,
			NewPrice: computeNewPrice(item.BasePrice, modifier, value, isPercentage),
		})
	}

	actionID := s.registry.Register(&PendingAction{
		Kind:         ActionPriceUpdate,
		RestaurantID: restaurantID,
		UserID:       userID,
		PriceChanges: changes,
	})

	changeText := fmt.Sprintf("₹%.2f", value)
	if isPercentage {
		changeText = fmt.Sprintf("%g%%", value)
	}
	var verb string
	switch modifier {
	case ModifierDecrement:
		verb = fmt.Sprintf("decrease by %s", changeText)
	case ModifierSet:
		verb = fmt.Sprintf("set to %s", changeText)
	default:
		verb = fmt.Sprintf("increase by %s", changeText)
	}

	return &Response{
		Message:              fmt.Sprintf("Found %d item(s) matching '%s'. Ready to %s — confirm to apply:", len(items), target, verb),
		Intent:               IntentMenuPriceUpdate,
		RequiresConfirmation: true,
		Preview: &Preview{
			Type:     ActionPriceUpdate,
			Changes:  changes,
			ActionID: actionID,
		},
	}, nil
}

// handleAvailabilityToggle applies immediately, without a confirmation step:
// flipping availability is trivially reversible, bulk price changes are not.
func (s *Service) handleAvailabilityToggle(ctx context.Context, restaurantID, userID string, cmd ParsedCommand) (*Response, error) {
	names := cmd.Entities.StringSlice("items")
	available := cmd.Entities.Bool("available")

	if len(names) == 0 {
		return &Response{
			Message: "Which items would you like to update?",
			Intent:  IntentMenuAvailabilityToggle,
		}, nil
	}

	candidates, err := s.menuRepo.ListItems(ctx, restaurantID, "")
	if err != nil {
		return nil, fmt.Errorf("error listing menu items: %w", err)
	}

	matched := s.resolver.Resolve(names, candidates)
	if len(matched) == 0 {
		return &Response{
			Message: fmt.Sprintf("Couldn't find any items matching '%s'.", strings.Join(names, "', '")),
			Intent:  IntentMenuAvailabilityToggle,
		}, nil
	}

	itemIDs := make([]string, 0, len(matched))
	for _, item := range matched {
		itemIDs = append(itemIDs, item.ID)
	}

	result, err := s.applier.Apply(ctx, &PendingAction{
		Kind:         ActionAvailabilityToggle,
		RestaurantID: restaurantID,
		UserID:       userID,
		ItemIDs:      itemIDs,
		Available:    available,
	})
	if err != nil {
		return nil, err
	}

	itemNames := make([]string, 0, len(matched))
	for _, item := range matched {
		itemNames = append(itemNames, item.Name)
	}
	state := "86'd (unavailable)"
	if available {
		state = "available"
	}

	return &Response{
		Message: fmt.Sprintf("Done! %d item(s) now %s: %s", result.UpdatedCount, state, strings.Join(itemNames, ", ")),
		Intent:  IntentMenuAvailabilityToggle,
	}, nil
}

func (s *Service) handleSalesQuery(ctx context.Context, restaurantID string) (*Response, error) {
	summary, err := s.salesRepo.TodaySummary(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("error querying today's sales: %w", err)
	}

	if summary.Orders == 0 && summary.Revenue == 0 {
		return &Response{
			Message: "No sales recorded yet today.",
			Intent:  IntentSalesQueryToday,
		}, nil
	}

	msg := fmt.Sprintf("Here's your %s update:\n\n"+
		"Revenue: ₹%.2f\n"+
		"Orders: %d\n"+
		"Covers: %d\n"+
		"Avg Ticket: ₹%.2f",
		dayPart(s.now()), summary.Revenue, summary.Orders, summary.Covers, summary.AvgTicket())

	return &Response{Message: msg, Intent: IntentSalesQueryToday}, nil
}

func (s *Service) handleTopSellers(ctx context.Context, restaurantID string) (*Response, error) {
	top, err := s.salesRepo.TopSellers(ctx, restaurantID, 5)
	if err != nil {
		return nil, fmt.Errorf("error querying top sellers: %w", err)
	}
	if len(top) == 0 {
		return &Response{
			Message: "No sales data available for today yet.",
			Intent:  IntentTopSellers,
		}, nil
	}

	var b strings.Builder
	b.WriteString("Top sellers today:\n")
	for i, item := range top {
		fmt.Fprintf(&b, "\n%d. %s — %d sold (₹%.2f)", i+1, item.Name, item.Quantity, item.Revenue)
	}

	return &Response{Message: b.String(), Intent: IntentTopSellers}, nil
}

func (s *Service) handleTableList(ctx context.Context, restaurantID string) (*Response, error) {
	tables, err := s.tableRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("error listing tables: %w", err)
	}
	if len(tables) == 0 {
		return &Response{
			Message: "No tables configured yet.",
			Intent:  IntentTableList,
		}, nil
	}

	byStatus := make(map[table.Status][]string)
	for _, t := range tables {
		byStatus[t.Status] = append(byStatus[t.Status], t.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d table(s):", len(tables))
	for _, status := range []table.Status{table.StatusAvailable, table.StatusOccupied, table.StatusReserved, table.StatusBlocked} {
		names := byStatus[status]
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%d): %s", strings.ToLower(string(status)), len(names), strings.Join(names, ", "))
	}

	return &Response{Message: b.String(), Intent: IntentTableList}, nil
}

func (s *Service) handleMenuSearch(ctx context.Context, restaurantID string, cmd ParsedCommand) (*Response, error) {
	query := cmd.Entities.String("query")
	if query == "" {
		return &Response{
			Message: "What should I look for?",
			Intent:  IntentMenuSearch,
		}, nil
	}

	items, err := s.menuRepo.FindItemsByNameSubstrings(ctx, restaurantID, []string{query})
	if err != nil {
		return nil, fmt.Errorf("error searching menu: %w", err)
	}
	if len(items) == 0 {
		return &Response{
			Message: fmt.Sprintf("Couldn't find anything matching '%s'.", query),
			Intent:  IntentMenuSearch,
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d item(s):", len(items))
	for _, item := range items {
		state := "available"
		if !item.IsAvailable {
			state = "86'd"
		}
		fmt.Fprintf(&b, "\n- %s — ₹%.2f (%s)", item.Name, item.BasePrice, state)
	}

	return &Response{Message: b.String(), Intent: IntentMenuSearch}, nil
}

func (s *Service) handleGreeting() *Response {
	return &Response{
		Message: fmt.Sprintf("Good %s! I'm your POS assistant. How can I help you today?", dayPart(s.now())),
		Intent:  IntentGreeting,
	}
}

func (s *Service) handleHelp() *Response {
	return &Response{
		Message: `I can help you with:

Menu management:
- "Increase starters by 10%"
- "Reduce the veg thali by ₹20"
- "86 the paneer tikka" (mark unavailable)
- "Mark biryani available"

Sales and analytics:
- "How's today going?"
- "What are the top sellers?"
- "Table status"

Just type naturally and I'll help!`,
		Intent: IntentHelp,
	}
}

func (s *Service) handleUnknown() *Response {
	return &Response{
		Message: "I couldn't understand that. Try asking me to update prices, mark items available or unavailable, or check today's sales.",
		Intent:  IntentUnknown,
	}
}

func dayPart(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}
