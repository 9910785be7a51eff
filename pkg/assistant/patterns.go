package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

// patternRule pairs a regular expression with the intent it signals and an
// extractor that builds entities from the capture groups.
type patternRule struct {
	re      *regexp.Regexp
	intent  Intent
	extract func(m []string) Entities
}

// quickPatterns are tried in declared order and the first match wins, so more
// specific phrasings must stay above the general ones. The "find X" catch-all
// is deliberately last. Reordering this list changes behavior.
var quickPatterns = []patternRule{
	// "86 the paneer tikka" (restaurant slang for mark unavailable)
	{
		re:     regexp.MustCompile(`(?i)86\s+(?:the\s+)?(.+)`),
		intent: IntentMenuAvailabilityToggle,
		extract: func(m []string) Entities {
			return Entities{"items": []string{strings.TrimSpace(m[1])}, "available": false}
		},
	},
	// "mark biryani available", "make the lassi back"
	{
		re:     regexp.MustCompile(`(?i)(?:mark|make)\s+(?:the\s+)?(.+?)\s+(?:available|back)`),
		intent: IntentMenuAvailabilityToggle,
		extract: func(m []string) Entities {
			return Entities{"items": []string{strings.TrimSpace(m[1])}, "available": true}
		},
	},
	// "increase starters by 10%", "raise burger by ₹20"
	{
		re:     regexp.MustCompile(`(?i)(?:increase|raise|up)\s+(.+?)\s+(?:by|to)\s+(?:₹|rs\.?|inr)?\s*(\d+(?:\.\d+)?)\s*(%)?`),
		intent: IntentMenuPriceUpdate,
		extract: func(m []string) Entities {
			return priceEntities(m, ModifierIncrement)
		},
	},
	// "decrease desserts by 5%", "drop coffee by rs 10"
	{
		re:     regexp.MustCompile(`(?i)(?:decrease|reduce|lower|drop)\s+(.+?)\s+(?:by|to)\s+(?:₹|rs\.?|inr)?\s*(\d+(?:\.\d+)?)\s*(%)?`),
		intent: IntentMenuPriceUpdate,
		extract: func(m []string) Entities {
			return priceEntities(m, ModifierDecrement)
		},
	},
	// "set samosa price to 40", "change the thali to ₹250"
	{
		re:     regexp.MustCompile(`(?i)(?:set|change)\s+(?:the\s+)?(.+?)\s+(?:price\s+)?to\s+(?:₹|rs\.?|inr)?\s*(\d+(?:\.\d+)?)\s*(%)?`),
		intent: IntentMenuPriceUpdate,
		extract: func(m []string) Entities {
			return priceEntities(m, ModifierSet)
		},
	},
	// "how's today", "sales", "revenue", "how's business"
	{
		re:     regexp.MustCompile(`(?i)(?:how'?s?\s+)?(?:today|sales|revenue|business)`),
		intent: IntentSalesQueryToday,
		extract: func(m []string) Entities {
			return Entities{}
		},
	},
	// "top sellers", "best selling items"
	{
		re:     regexp.MustCompile(`(?i)(?:top|best)\s*(?:seller|selling|item)`),
		intent: IntentTopSellers,
		extract: func(m []string) Entities {
			return Entities{}
		},
	},
	// "tables", "table status", "show tables"
	{
		re:     regexp.MustCompile(`(?i)(?:show\s+)?\btables?\b(?:\s+status)?`),
		intent: IntentTableList,
		extract: func(m []string) Entities {
			return Entities{}
		},
	},
	// greetings
	{
		re:     regexp.MustCompile(`(?i)^(?:hi|hello|hey|good\s+(?:morning|afternoon|evening))`),
		intent: IntentGreeting,
		extract: func(m []string) Entities {
			return Entities{}
		},
	},
	// help
	{
		re:     regexp.MustCompile(`(?i)^(?:help|what\s+can\s+you\s+do|\?)`),
		intent: IntentHelp,
		extract: func(m []string) Entities {
			return Entities{}
		},
	},
	// "find paneer", "search for momos", "do we have kulfi" — general search,
	// keep last
	{
		re:     regexp.MustCompile(`(?i)(?:find|search(?:\s+for)?|do\s+we\s+have)\s+(.+)`),
		intent: IntentMenuSearch,
		extract: func(m []string) Entities {
			return Entities{"query": strings.TrimSpace(m[1])}
		},
	},
}

func priceEntities(m []string, modifier PriceModifier) Entities {
	value, _ := strconv.ParseFloat(m[2], 64)
	return Entities{
		"target":        strings.TrimSpace(m[1]),
		"modifier":      string(modifier),
		"value":         value,
		"is_percentage": m[3] != "",
	}
}

// MatchPattern tries the quick pattern rules against the trimmed input. A miss
// is not an error, it means "fall through to the classifier".
func MatchPattern(text string) (Intent, Entities, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return IntentUnknown, nil, false
	}
	for _, rule := range quickPatterns {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			return rule.intent, rule.extract(m), true
		}
	}
	return IntentUnknown, nil, false
}
