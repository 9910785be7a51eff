package assistant

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/audit"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/conversation"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/menu"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/restaurant"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/sales"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/table"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

// in-memory fakes for the domain repositories

type fakeMenuRepo struct {
	categories []menu.Category
	items      []menu.Item
}

func (f *fakeMenuRepo) ListCategories(ctx context.Context, restaurantID string) ([]menu.Category, error) {
	return f.categories, nil
}

func (f *fakeMenuRepo) ListItems(ctx context.Context, restaurantID, categoryID string) ([]menu.Item, error) {
	var out []menu.Item
	for _, item := range f.items {
		if item.RestaurantID != restaurantID {
			continue
		}
		if categoryID != "" && item.CategoryID != categoryID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeMenuRepo) FindItemsByCategoryNameOrIDs(ctx context.Context, restaurantID, target string) ([]menu.Item, error) {
	needle := strings.ToLower(target)
	var out []menu.Item
	for _, item := range f.items {
		if item.RestaurantID != restaurantID {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.CategoryName), needle) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) FindItemsByNameSubstrings(ctx context.Context, restaurantID string, names []string) ([]menu.Item, error) {
	var out []menu.Item
	for _, item := range f.items {
		if item.RestaurantID != restaurantID {
			continue
		}
		for _, name := range names {
			if strings.Contains(strings.ToLower(item.Name), strings.ToLower(name)) {
				out = append(out, item)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) ApplyPriceUpdates(ctx context.Context, restaurantID string, updates []menu.PriceUpdate) (int, error) {
	count := 0
	for _, update := range updates {
		for i := range f.items {
			if f.items[i].ID == update.ItemID && f.items[i].RestaurantID == restaurantID {
				f.items[i].BasePrice = update.NewPrice
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeMenuRepo) SetAvailability(ctx context.Context, restaurantID string, itemIDs []string, available bool) ([]menu.Item, error) {
	var updated []menu.Item
	for _, id := range itemIDs {
		for i := range f.items {
			if f.items[i].ID == id && f.items[i].RestaurantID == restaurantID {
				f.items[i].IsAvailable = available
				updated = append(updated, f.items[i])
			}
		}
	}
	return updated, nil
}

func (f *fakeMenuRepo) item(id string) menu.Item {
	for _, item := range f.items {
		if item.ID == id {
			return item
		}
	}
	return menu.Item{}
}

type fakeTableRepo struct {
	tables []table.Table
}

func (f *fakeTableRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]table.Table, error) {
	return f.tables, nil
}

type fakeSalesRepo struct {
	summary sales.DailySummary
	top     []sales.ItemSales
}

func (f *fakeSalesRepo) TodaySummary(ctx context.Context, restaurantID string) (*sales.DailySummary, error) {
	s := f.summary
	return &s, nil
}

func (f *fakeSalesRepo) TopSellers(ctx context.Context, restaurantID string, limit int) ([]sales.ItemSales, error) {
	if limit < len(f.top) {
		return f.top[:limit], nil
	}
	return f.top, nil
}

type fakeConvRepo struct {
	conversations map[string]*conversation.Conversation
	messages      []conversation.Message
	nextID        int
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{conversations: make(map[string]*conversation.Conversation)}
}

func (f *fakeConvRepo) Create(ctx context.Context, conv *conversation.Conversation) error {
	f.nextID++
	conv.ID = fmt.Sprintf("conv-%d", f.nextID)
	conv.CreatedAt = time.Now()
	f.conversations[conv.ID] = conv
	return nil
}

func (f *fakeConvRepo) FindByID(ctx context.Context, restaurantID, id string) (*conversation.Conversation, error) {
	conv, ok := f.conversations[id]
	if !ok || conv.RestaurantID != restaurantID {
		return nil, nil
	}
	return conv, nil
}

func (f *fakeConvRepo) AppendMessage(ctx context.Context, msg *conversation.Message) error {
	msg.ID = fmt.Sprintf("msg-%d", len(f.messages)+1)
	msg.CreatedAt = time.Now()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeConvRepo) ListMessages(ctx context.Context, conversationID string, limit int) ([]conversation.Message, error) {
	var out []conversation.Message
	for _, msg := range f.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	records []audit.Record
}

func (f *fakeAuditRepo) Save(ctx context.Context, rec *audit.Record) error {
	f.records = append(f.records, *rec)
	return nil
}

type fakeRestaurantRepo struct{}

func (fakeRestaurantRepo) FindByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	return &restaurant.Restaurant{ID: id, Name: "Spice Garden", IsActive: true}, nil
}

// fixture wires a Service over the fakes with a pattern-only classifier

type fixture struct {
	service   *Service
	menuRepo  *fakeMenuRepo
	salesRepo *fakeSalesRepo
	tableRepo *fakeTableRepo
	convRepo  *fakeConvRepo
	auditRepo *fakeAuditRepo
	registry  *Registry
}

func newFixture() *fixture {
	menuRepo := &fakeMenuRepo{
		categories: []menu.Category{
			{ID: "c1", RestaurantID: "r1", Name: "Starters", IsActive: true},
			{ID: "c2", RestaurantID: "r1", Name: "Mains", IsActive: true},
		},
		items: []menu.Item{
			{ID: "i1", RestaurantID: "r1", CategoryID: "c1", CategoryName: "Starters", Name: "Paneer Tikka", BasePrice: 180, IsAvailable: true, IsActive: true},
			{ID: "i2", RestaurantID: "r1", CategoryID: "c1", CategoryName: "Starters", Name: "Veg Spring Rolls", BasePrice: 220, IsAvailable: true, IsActive: true},
			{ID: "i3", RestaurantID: "r1", CategoryID: "c1", CategoryName: "Starters", Name: "Chicken 65", BasePrice: 280, IsAvailable: true, IsActive: true},
			{ID: "i4", RestaurantID: "r1", CategoryID: "c2", CategoryName: "Mains", Name: "Veg Thali", BasePrice: 250, IsAvailable: true, IsActive: true},
		},
	}
	salesRepo := &fakeSalesRepo{}
	tableRepo := &fakeTableRepo{}
	convRepo := newFakeConvRepo()
	auditRepo := &fakeAuditRepo{}

	log := logger.NewNop()
	applier := NewActionApplier(menuRepo, auditRepo, log)
	registry := NewRegistry(applier, DefaultActionTTL, log)
	classifier := NewClassifier(nil, log)

	service := NewService(classifier, registry, applier, nil,
		menuRepo, tableRepo, salesRepo, convRepo, fakeRestaurantRepo{}, log)

	return &fixture{
		service:   service,
		menuRepo:  menuRepo,
		salesRepo: salesRepo,
		tableRepo: tableRepo,
		convRepo:  convRepo,
		auditRepo: auditRepo,
		registry:  registry,
	}
}

func TestComputeNewPrice(t *testing.T) {
	tests := []struct {
		name         string
		current      float64
		modifier     PriceModifier
		value        float64
		isPercentage bool
		want         float64
	}{
		{"absolute increment", 280, ModifierIncrement, 20, false, 300},
		{"percentage increment", 280, ModifierIncrement, 10, true, 308},
		{"percentage increment rounds", 199.99, ModifierIncrement, 5, true, 209.99},
		{"absolute decrement", 220, ModifierDecrement, 20, false, 200},
		{"percentage decrement", 200, ModifierDecrement, 5, true, 190},
		{"decrement floors at zero", 100, ModifierDecrement, 150, false, 0},
		{"set ignores current", 180, ModifierSet, 99, false, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeNewPrice(tt.current, tt.modifier, tt.value, tt.isPercentage)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailabilityToggleAppliesImmediately(t *testing.T) {
	f := newFixture()

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "86 the paneer tikka", "")
	require.NoError(t, err)

	assert.False(t, resp.RequiresConfirmation)
	assert.Nil(t, resp.Preview)
	assert.Contains(t, resp.Message, "86'd")
	assert.Contains(t, resp.Message, "Paneer Tikka")
	assert.False(t, f.menuRepo.item("i1").IsAvailable)

	// immediate mutations are audited too
	require.Len(t, f.auditRepo.records, 1)
	assert.Equal(t, "MENU_AVAILABILITY_TOGGLE", f.auditRepo.records[0].ActionType)
}

func TestAvailabilityToggleBackOn(t *testing.T) {
	f := newFixture()
	f.menuRepo.items[0].IsAvailable = false

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "mark paneer tikka available", "")
	require.NoError(t, err)

	assert.Contains(t, resp.Message, "available")
	assert.True(t, f.menuRepo.item("i1").IsAvailable)
}

func TestAvailabilityToggleNoMatchChangesNothing(t *testing.T) {
	f := newFixture()

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "86 the sushi platter", "")
	require.NoError(t, err)

	assert.Contains(t, resp.Message, "Couldn't find any items matching 'sushi platter'")
	assert.Empty(t, f.auditRepo.records)
	for _, item := range f.menuRepo.items {
		assert.True(t, item.IsAvailable)
	}
}

func TestPriceUpdatePreviewAndConfirm(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.service.ProcessMessage(ctx, "r1", "u1", "increase starters by 10%", "")
	require.NoError(t, err)

	require.True(t, resp.RequiresConfirmation)
	require.NotNil(t, resp.Preview)
	assert.Equal(t, ActionPriceUpdate, resp.Preview.Type)
	assert.NotEmpty(t, resp.Preview.ActionID)

	require.Len(t, resp.Preview.Changes, 3)
	byItem := make(map[string]PriceChange)
	for _, change := range resp.Preview.Changes {
		byItem[change.ItemID] = change
	}
	assert.Equal(t, 198.0, byItem["i1"].NewPrice)
	assert.Equal(t, 242.0, byItem["i2"].NewPrice)
	assert.Equal(t, 308.0, byItem["i3"].NewPrice)

	// nothing is applied until the explicit confirm
	assert.Equal(t, 180.0, f.menuRepo.item("i1").BasePrice)
	assert.Empty(t, f.auditRepo.records)

	result, err := f.service.ConfirmAction(ctx, resp.Preview.ActionID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.UpdatedCount)

	assert.Equal(t, 198.0, f.menuRepo.item("i1").BasePrice)
	assert.Equal(t, 242.0, f.menuRepo.item("i2").BasePrice)
	assert.Equal(t, 308.0, f.menuRepo.item("i3").BasePrice)

	require.Len(t, f.auditRepo.records, 1)
	rec := f.auditRepo.records[0]
	assert.Equal(t, "MENU_PRICE_UPDATE", rec.ActionType)
	assert.Equal(t, "r1", rec.RestaurantID)
	assert.Equal(t, "u1", rec.UserID)
	assert.True(t, rec.IsConfirmed)

	// a second confirm on the same id must not double-apply
	_, err = f.service.ConfirmAction(ctx, resp.Preview.ActionID)
	assert.ErrorIs(t, err, ErrActionNotFound)
	assert.Equal(t, 198.0, f.menuRepo.item("i1").BasePrice)
}

func TestPriceUpdateCancelDiscardsChanges(t *testing.T) {
	f := newFixture()

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "raise veg thali by ₹20", "")
	require.NoError(t, err)
	require.NotNil(t, resp.Preview)

	assert.True(t, f.service.CancelAction(resp.Preview.ActionID))

	assert.Equal(t, 250.0, f.menuRepo.item("i4").BasePrice)
	assert.Empty(t, f.auditRepo.records)

	_, err = f.service.ConfirmAction(context.Background(), resp.Preview.ActionID)
	assert.ErrorIs(t, err, ErrActionNotFound)
}

func TestPriceUpdateNoMatch(t *testing.T) {
	f := newFixture()

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "increase sushi by 10%", "")
	require.NoError(t, err)

	assert.Equal(t, "Couldn't find any items matching 'sushi'.", resp.Message)
	assert.False(t, resp.RequiresConfirmation)
	assert.Nil(t, resp.Preview)
}

func TestSalesQueryEmptyDay(t *testing.T) {
	f := newFixture()

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "how's business", "")
	require.NoError(t, err)

	assert.Equal(t, "No sales recorded yet today.", resp.Message)
}

func TestSalesQueryWithData(t *testing.T) {
	f := newFixture()
	f.salesRepo.summary = sales.DailySummary{Revenue: 45250.50, Orders: 87, Covers: 230}

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "how's business", "")
	require.NoError(t, err)

	assert.Contains(t, resp.Message, "Revenue: ₹45250.50")
	assert.Contains(t, resp.Message, "Orders: 87")
	assert.Contains(t, resp.Message, "Covers: 230")
	assert.Contains(t, resp.Message, fmt.Sprintf("Avg Ticket: ₹%.2f", 45250.50/87))
}

func TestTopSellers(t *testing.T) {
	f := newFixture()
	f.salesRepo.top = []sales.ItemSales{
		{Name: "Butter Chicken", Quantity: 42, Revenue: 13860},
		{Name: "Garlic Naan", Quantity: 38, Revenue: 2660},
	}

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "top sellers", "")
	require.NoError(t, err)

	assert.Contains(t, resp.Message, "1. Butter Chicken — 42 sold")
	assert.Contains(t, resp.Message, "2. Garlic Naan — 38 sold")
}

func TestTopSellersEmpty(t *testing.T) {
	f := newFixture()

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "top sellers", "")
	require.NoError(t, err)

	assert.Equal(t, "No sales data available for today yet.", resp.Message)
}

func TestTableListGroupsByStatus(t *testing.T) {
	f := newFixture()
	f.tableRepo.tables = []table.Table{
		{ID: "t1", Name: "T1", Status: table.StatusAvailable},
		{ID: "t2", Name: "T2", Status: table.StatusOccupied},
		{ID: "t3", Name: "T3", Status: table.StatusOccupied},
		{ID: "t4", Name: "T4", Status: table.StatusReserved},
	}

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "table status", "")
	require.NoError(t, err)

	assert.Contains(t, resp.Message, "4 table(s):")
	assert.Contains(t, resp.Message, "available (1): T1")
	assert.Contains(t, resp.Message, "occupied (2): T2, T3")
	assert.Contains(t, resp.Message, "reserved (1): T4")
}

func TestMenuSearch(t *testing.T) {
	f := newFixture()
	f.menuRepo.items[0].IsAvailable = false

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "find paneer", "")
	require.NoError(t, err)

	assert.Contains(t, resp.Message, "Paneer Tikka")
	assert.Contains(t, resp.Message, "₹180.00")
	assert.Contains(t, resp.Message, "86'd")
}

func TestMenuSearchNoMatch(t *testing.T) {
	f := newFixture()

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "find ramen", "")
	require.NoError(t, err)

	assert.Equal(t, "Couldn't find anything matching 'ramen'.", resp.Message)
}

func TestUnparseableMessageAsksForClarification(t *testing.T) {
	f := newFixture()

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "add a new waiter named Ravi", "")
	require.NoError(t, err)

	assert.Equal(t, IntentUnknown, resp.Intent)
	assert.Equal(t, msgAINotConfigured, resp.Message)
	assert.False(t, resp.RequiresConfirmation)
}

func TestConversationLogging(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.service.ProcessMessage(ctx, "r1", "u1", "hello", "")
	require.NoError(t, err)
	require.NotEmpty(t, resp.ConversationID)

	require.Len(t, f.convRepo.messages, 2)
	userMsg := f.convRepo.messages[0]
	assistantMsg := f.convRepo.messages[1]

	assert.Equal(t, conversation.RoleUser, userMsg.Role)
	assert.Equal(t, "hello", userMsg.Content)
	assert.Equal(t, string(IntentGreeting), userMsg.Intent)
	assert.Equal(t, 1.0, userMsg.Confidence)

	assert.Equal(t, conversation.RoleAssistant, assistantMsg.Role)
	assert.Equal(t, resp.Message, assistantMsg.Content)
	assert.Equal(t, resp.ConversationID, assistantMsg.ConversationID)

	// a follow-up with the returned id stays in the same conversation
	resp2, err := f.service.ProcessMessage(ctx, "r1", "u1", "help", resp.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, resp.ConversationID, resp2.ConversationID)
	assert.Len(t, f.convRepo.conversations, 1)
}

func TestConversationScopedToRestaurant(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.service.ProcessMessage(ctx, "r1", "u1", "hello", "")
	require.NoError(t, err)

	// another restaurant referencing the same conversation id gets a new one
	resp2, err := f.service.ProcessMessage(ctx, "r2", "u2", "hello", resp.ConversationID)
	require.NoError(t, err)
	assert.NotEqual(t, resp.ConversationID, resp2.ConversationID)
}

func TestHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.service.ProcessMessage(ctx, "r1", "u1", "hello", "")
	require.NoError(t, err)

	messages, err := f.service.History(ctx, "r1", resp.ConversationID, 50)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	// unknown conversation yields nil, the transport maps it to 404
	messages, err = f.service.History(ctx, "r1", "no-such-conv", 50)
	require.NoError(t, err)
	assert.Nil(t, messages)
}

func TestGreetingAndHelp(t *testing.T) {
	f := newFixture()

	resp, err := f.service.ProcessMessage(context.Background(), "r1", "u1", "good morning", "")
	require.NoError(t, err)
	assert.Equal(t, IntentGreeting, resp.Intent)
	assert.Contains(t, resp.Message, "POS assistant")

	resp, err = f.service.ProcessMessage(context.Background(), "r1", "u1", "help", "")
	require.NoError(t, err)
	assert.Equal(t, IntentHelp, resp.Intent)
	assert.Contains(t, resp.Message, "Increase starters by 10%")
}
