package logic

import (
	"sort"
	"strings"

	"memodeck/internal/ui/state"
)

// SortMode represents different sort modes
type SortMode int

const (
	SortByCreated SortMode = iota
	SortByTitle
	SortByUpdated
)

// SortModes lists the modes in the order `s` cycles through them
var SortModes = []SortMode{SortByCreated, SortByTitle, SortByUpdated}

func (m SortMode) String() string {
	switch m {
	case SortByTitle:
		return "title"
	case SortByUpdated:
		return "updated"
	default:
		return "created"
	}
}

// ParseSortMode accepts a configured sort name
func ParseSortMode(name string) (SortMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "created", "c":
		return SortByCreated, true
	case "title", "t", "name":
		return SortByTitle, true
	case "updated", "u", "modified":
		return SortByUpdated, true
	}
	return SortByCreated, false
}

// Next returns the mode after m
func (m SortMode) Next() SortMode {
	for i, mode := range SortModes {
		if mode == m {
			return SortModes[(i+1)%len(SortModes)]
		}
	}
	return SortByCreated
}

// SortItems sorts items in place. Deleted items sort by deletion time under
// the created and updated modes. Ties fall back to the identifier.
func SortItems(items []state.ListItem, mode SortMode) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch mode {
		case SortByTitle:
			ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if ta != tb {
				return ta < tb
			}
		case SortByUpdated:
			ua, ub := a.UpdatedAt, b.UpdatedAt
			if !a.DeletedAt.IsZero() || !b.DeletedAt.IsZero() {
				ua, ub = a.DeletedAt, b.DeletedAt
			}
			if !ua.Equal(ub) {
				return ua.After(ub) // Newest first
			}
		default:
			ca, cb := a.CreatedAt, b.CreatedAt
			if !a.DeletedAt.IsZero() || !b.DeletedAt.IsZero() {
				ca, cb = a.DeletedAt, b.DeletedAt
			}
			if !ca.Equal(cb) {
				return ca.After(cb)
			}
		}
		return a.ID > b.ID
	})
}
