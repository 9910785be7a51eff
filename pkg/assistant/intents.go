package assistant

// Intent is the closed set of command classifications the assistant supports
type Intent string

const (
	IntentMenuPriceUpdate        Intent = "MENU_PRICE_UPDATE"
	IntentMenuAvailabilityToggle Intent = "MENU_AVAILABILITY_TOGGLE"
	IntentSalesQueryToday        Intent = "SALES_QUERY_TODAY"
	IntentTopSellers             Intent = "TOP_SELLERS"
	IntentTableList              Intent = "TABLE_LIST"
	IntentMenuSearch             Intent = "MENU_SEARCH"
	IntentGreeting               Intent = "GREETING"
	IntentHelp                   Intent = "HELP"
	IntentUnknown                Intent = "UNKNOWN"
)

// knownIntents guards against the language model inventing intent tags
var knownIntents = map[Intent]bool{
	IntentMenuPriceUpdate:        true,
	IntentMenuAvailabilityToggle: true,
	IntentSalesQueryToday:        true,
	IntentTopSellers:             true,
	IntentTableList:              true,
	IntentMenuSearch:             true,
	IntentGreeting:               true,
	IntentHelp:                   true,
	IntentUnknown:                true,
}

// PriceModifier says how a price-update value is applied
type PriceModifier string

const (
	ModifierIncrement PriceModifier = "INCREMENT"
	ModifierDecrement PriceModifier = "DECREMENT"
	ModifierSet       PriceModifier = "SET"
)

// Entities is the intent-specific parameter bag extracted from an utterance.
// Values come either from regex capture groups or from the language model's
// JSON response, so accessors tolerate both native and decoded-JSON types.
type Entities map[string]interface{}

// String returns a string entity, or empty when absent
func (e Entities) String(key string) string {
	if v, ok := e[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Float returns a numeric entity, accepting float64 and int
func (e Entities) Float(key string) float64 {
	switch v := e[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns a boolean entity, or false when absent
func (e Entities) Bool(key string) bool {
	if v, ok := e[key].(bool); ok {
		return v
	}
	return false
}

// StringSlice returns a list entity, accepting []string and decoded-JSON
// []interface{}
func (e Entities) StringSlice(key string) []string {
	switch v := e[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// ParsedCommand is the result of classifying one user utterance
type ParsedCommand struct {
	RawText               string   `json:"raw_text"`
	Intent                Intent   `json:"intent"`
	Confidence            float64  `json:"confidence"`
	Entities              Entities `json:"entities"`
	NeedsClarification    bool     `json:"needs_clarification"`
	ClarificationQuestion string   `json:"clarification_question,omitempty"`
}
