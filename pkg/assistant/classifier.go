package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

// Results below this confidence are treated as ambiguous and turned into a
// clarification request even when the backend names an intent.
const confidenceThreshold = 0.7

// Fixed classifier messages. These are part of the user-facing contract and
// asserted in tests, do not reword casually.
const (
	msgAINotConfigured = "AI features require a Gemini API key. I can still handle direct commands like \"86 the paneer tikka\" or \"increase starters by 10%\"."
	msgPleaseRephrase  = "I didn't quite catch that. Could you rephrase it?"
)

// RestaurantContext is the per-request context handed to the language model
type RestaurantContext struct {
	RestaurantName string
	Categories     []string
}

// Classifier resolves raw text to a ParsedCommand. The quick patterns run
// first as a cost-control path; the language model is only consulted on a
// pattern miss.
type Classifier struct {
	completion CompletionClient
	logger     logger.Logger
}

// NewClassifier creates a Classifier. completion may be nil when no backend is
// configured.
func NewClassifier(completion CompletionClient, log logger.Logger) *Classifier {
	return &Classifier{
		completion: completion,
		logger:     log,
	}
}

// llmResult is the JSON contract the language model must produce
type llmResult struct {
	Intent                string                 `json:"intent"`
	Confidence            float64                `json:"confidence"`
	Entities              map[string]interface{} `json:"entities"`
	NeedsClarification    bool                   `json:"needsClarification"`
	ClarificationQuestion string                 `json:"clarificationQuestion"`
}

// Classify resolves one utterance. It never returns an error: backend
// failures, malformed responses and low confidence all degrade to a
// clarification-shaped ParsedCommand.
func (c *Classifier) Classify(ctx context.Context, text string, rc RestaurantContext) ParsedCommand {
	text = strings.TrimSpace(text)

	if intent, entities, ok := MatchPattern(text); ok {
		return ParsedCommand{
			RawText:    text,
			Intent:     intent,
			Confidence: 1.0,
			Entities:   entities,
		}
	}

	if c.completion == nil {
		return ParsedCommand{
			RawText:               text,
			Intent:                IntentUnknown,
			Confidence:            0,
			Entities:              Entities{},
			NeedsClarification:    true,
			ClarificationQuestion: msgAINotConfigured,
		}
	}

	raw, err := c.completion.Complete(ctx, systemPrompt(rc), userPrompt(text), CompletionOptions{
		Temperature: 0.1,
		MaxTokens:   512,
		ForceJSON:   true,
	})
	if err != nil {
		c.logger.Warn("classifier backend call failed", "error", err)
		return c.clarify(text)
	}

	var result llmResult
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &result); err != nil {
		c.logger.Warn("classifier returned malformed JSON", "error", err, "raw", raw)
		return c.clarify(text)
	}

	intent := Intent(result.Intent)
	if !knownIntents[intent] {
		c.logger.Warn("classifier returned unknown intent", "intent", result.Intent)
		return c.clarify(text)
	}

	cmd := ParsedCommand{
		RawText:               text,
		Intent:                intent,
		Confidence:            result.Confidence,
		Entities:              Entities(result.Entities),
		NeedsClarification:    result.NeedsClarification,
		ClarificationQuestion: result.ClarificationQuestion,
	}
	if cmd.Entities == nil {
		cmd.Entities = Entities{}
	}

	if cmd.Intent == IntentUnknown || cmd.Confidence < confidenceThreshold {
		cmd.NeedsClarification = true
		if cmd.ClarificationQuestion == "" {
			cmd.ClarificationQuestion = msgPleaseRephrase
		}
	}

	return cmd
}

func (c *Classifier) clarify(text string) ParsedCommand {
	return ParsedCommand{
		RawText:               text,
		Intent:                IntentUnknown,
		Confidence:            0,
		Entities:              Entities{},
		NeedsClarification:    true,
		ClarificationQuestion: msgPleaseRephrase,
	}
}

func systemPrompt(rc RestaurantContext) string {
	return fmt.Sprintf(`You are a restaurant POS assistant. Parse the user message into an intent and entities.

Restaurant: %s
Categories: %s

Respond ONLY with a JSON object of the shape:
{"intent": "...", "confidence": 0.0, "entities": {}, "needsClarification": false, "clarificationQuestion": ""}

Intents and their entities:
- MENU_PRICE_UPDATE: change prices. entities: target (item or category name), modifier (INCREMENT|DECREMENT|SET), value (number), is_percentage (bool). Currency values without a unit are rupees. "increase starters by 10%%" -> target "starters", INCREMENT, 10, true.
- MENU_AVAILABILITY_TOGGLE: mark items available/unavailable. entities: items (list of names), available (bool). "86" means mark unavailable.
- SALES_QUERY_TODAY: today's revenue/orders. no entities.
- TOP_SELLERS: best selling items. no entities.
- TABLE_LIST: table status overview. no entities.
- MENU_SEARCH: look an item up. entities: query (string).
- GREETING, HELP, UNKNOWN: no entities.

confidence is 0-1. If the message is ambiguous, set needsClarification true and ask a short clarificationQuestion.`,
		rc.RestaurantName, strings.Join(rc.Categories, ", "))
}

func userPrompt(text string) string {
	return fmt.Sprintf("User message: %q", text)
}

// stripCodeFences removes a ```json ... ``` wrapper some models insist on
// adding even when JSON output is forced
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
