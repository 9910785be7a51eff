package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/conversation"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/menu"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/restaurant"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/sales"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/table"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

// Service orchestrates one assistant turn: classify, dispatch to the intent
// handler, log both sides of the conversation and hand back the response.
type Service struct {
	classifier *Classifier
	registry   *Registry
	applier    Applier
	resolver   Resolver

	menuRepo       menu.Repository
	tableRepo      table.Repository
	salesRepo      sales.Repository
	convRepo       conversation.Repository
	restaurantRepo restaurant.Repository

	logger logger.Logger
	now    func() time.Time
}

// NewService creates the assistant Service
func NewService(
	classifier *Classifier,
	registry *Registry,
	applier Applier,
	resolver Resolver,
	menuRepo menu.Repository,
	tableRepo table.Repository,
	salesRepo sales.Repository,
	convRepo conversation.Repository,
	restaurantRepo restaurant.Repository,
	log logger.Logger,
) *Service {
	if resolver == nil {
		resolver = SubstringResolver{}
	}
	return &Service{
		classifier:     classifier,
		registry:       registry,
		applier:        applier,
		resolver:       resolver,
		menuRepo:       menuRepo,
		tableRepo:      tableRepo,
		salesRepo:      salesRepo,
		convRepo:       convRepo,
		restaurantRepo: restaurantRepo,
		logger:         log,
		now:            time.Now,
	}
}

// ProcessMessage handles one user turn. Ambiguity and no-match outcomes are
// ordinary responses; an error return means a broken data service and
// propagates to the transport layer.
func (s *Service) ProcessMessage(ctx context.Context, restaurantID, userID, message, conversationID string) (*Response, error) {
	start := s.now()

	conv, err := s.resolveConversation(ctx, restaurantID, userID, conversationID)
	if err != nil {
		return nil, err
	}

	cmd := s.classifier.Classify(ctx, message, s.restaurantContext(ctx, restaurantID))

	s.logger.Info("message classified",
		"conversation_id", conv.ID,
		"intent", cmd.Intent,
		"confidence", cmd.Confidence,
		"needs_clarification", cmd.NeedsClarification)

	if err := s.convRepo.AppendMessage(ctx, &conversation.Message{
		ConversationID: conv.ID,
		Role:           conversation.RoleUser,
		Content:        message,
		Intent:         string(cmd.Intent),
		Confidence:     cmd.Confidence,
		Entities:       cmd.Entities,
	}); err != nil {
		return nil, fmt.Errorf("error logging user message: %w", err)
	}

	var resp *Response
	if cmd.NeedsClarification {
		resp = &Response{
			Message: cmd.ClarificationQuestion,
			Intent:  cmd.Intent,
		}
	} else {
		resp, err = s.dispatch(ctx, restaurantID, userID, cmd)
		if err != nil {
			return nil, err
		}
	}
	resp.ConversationID = conv.ID

	latency := int(s.now().Sub(start) / time.Millisecond)
	if err := s.convRepo.AppendMessage(ctx, &conversation.Message{
		ConversationID: conv.ID,
		Role:           conversation.RoleAssistant,
		Content:        resp.Message,
		Intent:         string(cmd.Intent),
		ProcessingMs:   latency,
	}); err != nil {
		return nil, fmt.Errorf("error logging assistant message: %w", err)
	}

	return resp, nil
}

// ConfirmAction resolves a pending action by id, executing it at most once
func (s *Service) ConfirmAction(ctx context.Context, actionID string) (*ActionResult, error) {
	return s.registry.Confirm(ctx, actionID)
}

// CancelAction evicts a pending action without executing it
func (s *Service) CancelAction(actionID string) bool {
	return s.registry.Cancel(actionID)
}

// History returns the messages of a conversation for the UI
func (s *Service) History(ctx context.Context, restaurantID, conversationID string, limit int) ([]conversation.Message, error) {
	conv, err := s.convRepo.FindByID(ctx, restaurantID, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, nil
	}
	return s.convRepo.ListMessages(ctx, conv.ID, limit)
}

func (s *Service) dispatch(ctx context.Context, restaurantID, userID string, cmd ParsedCommand) (*Response, error) {
	switch cmd.Intent {
	case IntentMenuPriceUpdate:
		return s.handlePriceUpdate(ctx, restaurantID, userID, cmd)
	case IntentMenuAvailabilityToggle:
		return s.handleAvailabilityToggle(ctx, restaurantID, userID, cmd)
	case IntentSalesQueryToday:
		return s.handleSalesQuery(ctx, restaurantID)
	case IntentTopSellers:
		return s.handleTopSellers(ctx, restaurantID)
	case IntentTableList:
		return s.handleTableList(ctx, restaurantID)
	case IntentMenuSearch:
		return s.handleMenuSearch(ctx, restaurantID, cmd)
	case IntentGreeting:
		return s.handleGreeting(), nil
	case IntentHelp:
		return s.handleHelp(), nil
	default:
		return s.handleUnknown(), nil
	}
}

// resolveConversation loads an existing conversation or starts a new one when
// no id is supplied (or the supplied id does not belong to this restaurant)
func (s *Service) resolveConversation(ctx context.Context, restaurantID, userID, conversationID string) (*conversation.Conversation, error) {
	if conversationID != "" {
		conv, err := s.convRepo.FindByID(ctx, restaurantID, conversationID)
		if err != nil {
			return nil, fmt.Errorf("error loading conversation: %w", err)
		}
		if conv != nil {
			return conv, nil
		}
	}

	conv := &conversation.Conversation{
		RestaurantID: restaurantID,
		UserID:       userID,
		IsActive:     true,
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}
	return conv, nil
}

// restaurantContext assembles the per-request context for the language model.
// Failures here only degrade prompt quality, they never fail the turn.
func (s *Service) restaurantContext(ctx context.Context, restaurantID string) RestaurantContext {
	rc := RestaurantContext{}

	if r, err := s.restaurantRepo.FindByID(ctx, restaurantID); err == nil && r != nil {
		rc.RestaurantName = r.Name
	} else if err != nil {
		s.logger.Warn("error loading restaurant for classifier context", "error", err)
	}

	if categories, err := s.menuRepo.ListCategories(ctx, restaurantID); err == nil {
		for _, c := range categories {
			rc.Categories = append(rc.Categories, c.Name)
		}
	} else {
		s.logger.Warn("error loading categories for classifier context", "error", err)
	}

	return rc
}
