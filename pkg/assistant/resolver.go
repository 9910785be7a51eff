package assistant

import (
	"strings"

	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/menu"
)

// Resolver matches free-text names from an utterance against menu items. It is
// an interface so the matching strategy can be swapped (token-based, edit
// distance) without touching handler logic.
type Resolver interface {
	Resolve(names []string, candidates []menu.Item) []menu.Item
}

// SubstringResolver matches by case-insensitive substring in either direction,
// so "paneer tikka" finds "Paneer Tikka" and "the veg thali special" still
// finds "Veg Thali".
type SubstringResolver struct{}

func (SubstringResolver) Resolve(names []string, candidates []menu.Item) []menu.Item {
	var matched []menu.Item
	seen := make(map[string]bool)
	for _, name := range names {
		needle := strings.ToLower(strings.TrimSpace(name))
		if needle == "" {
			continue
		}
		for _, item := range candidates {
			itemName := strings.ToLower(item.Name)
			if strings.Contains(itemName, needle) || strings.Contains(needle, itemName) {
				if !seen[item.ID] {
					seen[item.ID] = true
					matched = append(matched, item)
				}
			}
		}
	}
	return matched
}
