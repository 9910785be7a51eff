package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		intent   Intent
		entities Entities
	}{
		{
			name:   "86 slang marks unavailable",
			text:   "86 the paneer tikka",
			intent: IntentMenuAvailabilityToggle,
			entities: Entities{
				"items":     []string{"paneer tikka"},
				"available": false,
			},
		},
		{
			name:   "86 without article",
			text:   "86 kulfi",
			intent: IntentMenuAvailabilityToggle,
			entities: Entities{
				"items":     []string{"kulfi"},
				"available": false,
			},
		},
		{
			name:   "mark available",
			text:   "mark biryani available",
			intent: IntentMenuAvailabilityToggle,
			entities: Entities{
				"items":     []string{"biryani"},
				"available": true,
			},
		},
		{
			name:   "make item back",
			text:   "make the lassi back",
			intent: IntentMenuAvailabilityToggle,
			entities: Entities{
				"items":     []string{"lassi"},
				"available": true,
			},
		},
		{
			name:   "percentage increase",
			text:   "increase starters by 10%",
			intent: IntentMenuPriceUpdate,
			entities: Entities{
				"target":        "starters",
				"modifier":      "INCREMENT",
				"value":         10.0,
				"is_percentage": true,
			},
		},
		{
			name:   "absolute raise with rupee sign",
			text:   "raise burger by ₹20",
			intent: IntentMenuPriceUpdate,
			entities: Entities{
				"target":        "burger",
				"modifier":      "INCREMENT",
				"value":         20.0,
				"is_percentage": false,
			},
		},
		{
			name:   "absolute decrease with rs prefix",
			text:   "drop coffee by rs 10",
			intent: IntentMenuPriceUpdate,
			entities: Entities{
				"target":        "coffee",
				"modifier":      "DECREMENT",
				"value":         10.0,
				"is_percentage": false,
			},
		},
		{
			name:   "percentage reduce keeps article in target",
			text:   "reduce the desserts by 5%",
			intent: IntentMenuPriceUpdate,
			entities: Entities{
				"target":        "the desserts",
				"modifier":      "DECREMENT",
				"value":         5.0,
				"is_percentage": true,
			},
		},
		{
			name:   "set absolute price",
			text:   "set samosa price to 40",
			intent: IntentMenuPriceUpdate,
			entities: Entities{
				"target":        "samosa",
				"modifier":      "SET",
				"value":         40.0,
				"is_percentage": false,
			},
		},
		{
			name:   "change to rupee amount",
			text:   "change the thali to ₹250",
			intent: IntentMenuPriceUpdate,
			entities: Entities{
				"target":        "thali",
				"modifier":      "SET",
				"value":         250.0,
				"is_percentage": false,
			},
		},
		{
			name:     "bare sales keyword",
			text:     "sales",
			intent:   IntentSalesQueryToday,
			entities: Entities{},
		},
		{
			name:     "hows business",
			text:     "how's business",
			intent:   IntentSalesQueryToday,
			entities: Entities{},
		},
		{
			name:     "top sellers",
			text:     "top sellers",
			intent:   IntentTopSellers,
			entities: Entities{},
		},
		{
			name:     "best selling items",
			text:     "best selling items",
			intent:   IntentTopSellers,
			entities: Entities{},
		},
		{
			name:     "table status",
			text:     "table status",
			intent:   IntentTableList,
			entities: Entities{},
		},
		{
			name:     "show tables",
			text:     "show tables",
			intent:   IntentTableList,
			entities: Entities{},
		},
		{
			name:     "greeting",
			text:     "hello",
			intent:   IntentGreeting,
			entities: Entities{},
		},
		{
			name:     "good morning greeting",
			text:     "good morning",
			intent:   IntentGreeting,
			entities: Entities{},
		},
		{
			name:     "help",
			text:     "help",
			intent:   IntentHelp,
			entities: Entities{},
		},
		{
			name:   "find search",
			text:   "find paneer",
			intent: IntentMenuSearch,
			entities: Entities{
				"query": "paneer",
			},
		},
		{
			name:   "do we have search",
			text:   "do we have kulfi",
			intent: IntentMenuSearch,
			entities: Entities{
				"query": "kulfi",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, entities, ok := MatchPattern(tt.text)
			require.True(t, ok, "expected %q to match a pattern", tt.text)
			assert.Equal(t, tt.intent, intent)
			assert.Equal(t, tt.entities, entities)
		})
	}
}

func TestMatchPatternPrecedence(t *testing.T) {
	// "today" also appears in the sales pattern; the more specific price rule
	// is declared earlier and must win
	intent, entities, ok := MatchPattern("increase today specials by 5%")
	require.True(t, ok)
	assert.Equal(t, IntentMenuPriceUpdate, intent)
	assert.Equal(t, "today specials", entities.String("target"))

	// "86" wins over the search catch-all even when the item name contains
	// search keywords
	intent, entities, ok = MatchPattern("86 the find-me special")
	require.True(t, ok)
	assert.Equal(t, IntentMenuAvailabilityToggle, intent)
	assert.Equal(t, []string{"find-me special"}, entities.StringSlice("items"))
}

func TestMatchPatternMiss(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"what is the meaning of life",
		"add a new waiter named Ravi",
	} {
		_, _, ok := MatchPattern(text)
		assert.False(t, ok, "expected %q not to match", text)
	}
}
