package ranking

import "strings"

// Intent is the outcome of classifying a free-text query
type Intent struct {
	Category string // UI label or All
	Search   string // text to use as the literal search filter
}

type intentRule struct {
	triggers []string
	label    string
}

// intentRules is evaluated top to bottom and the first match wins
var intentRules = []intentRule{
	{triggers: []string{"outdoor", "outside", "nature"}, label: LabelParks},
	{triggers: []string{"quiet", "silent", "library", "book"}, label: LabelLibraries},
	{triggers: []string{"cafe", "coffee"}, label: LabelCafes},
	{triggers: []string{"restaurant", "food", "eat"}, label: LabelRestaurants},
}

// Classify derives a category filter from free text by keyword matching.
// When the whole query is a single trigger word the search text is cleared,
// since the category already captures it.
func Classify(query string) Intent {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return Intent{Category: All}
	}

	folded := fold(trimmed)
	intent := Intent{Category: All, Search: trimmed}
	for _, rule := range intentRules {
		if containsAny(folded, rule.triggers) {
			intent.Category = rule.label
			break
		}
	}

	if isTriggerWord(folded) {
		intent.Search = ""
	}
	return intent
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isTriggerWord(s string) bool {
	for _, rule := range intentRules {
		for _, trigger := range rule.triggers {
			if s == trigger {
				return true
			}
		}
	}
	return false
}
