package logic

import (
	"strings"

	"memodeck/internal/ui/state"
)

// ItemFilter handles filter operations on list items
type ItemFilter struct{}

// NewItemFilter creates a new item filter
func NewItemFilter() *ItemFilter {
	return &ItemFilter{}
}

// MatchesFilter checks if an item matches the given filter query
func (f *ItemFilter) MatchesFilter(item state.ListItem, filterQuery string) bool {
	if filterQuery == "" {
		return true
	}

	query := strings.ToLower(strings.TrimSpace(filterQuery))

	// Check if it's a status filter
	if strings.HasPrefix(query, "status:") {
		return f.MatchesStatusFilter(item, strings.TrimPrefix(query, "status:"))
	}

	// Regular filter - check title and body
	return strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Body), query)
}

// MatchesStatusFilter checks a task status filter. Memos carry no status and
// never match.
func (f *ItemFilter) MatchesStatusFilter(item state.ListItem, filter string) bool {
	if item.Status == "" {
		return false
	}
	return strings.HasPrefix(string(item.Status), filter)
}

// Apply returns the items matching filterQuery, keeping their order
func (f *ItemFilter) Apply(items []state.ListItem, filterQuery string) []state.ListItem {
	out := make([]state.ListItem, 0, len(items))
	for _, it := range items {
		if f.MatchesFilter(it, filterQuery) {
			out = append(out, it)
		}
	}
	return out
}
