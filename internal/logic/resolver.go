package logic

import (
	"context"

	"memodeck/internal/domain"
)

// DeletedResolver looks up the original identifier of a deleted row
type DeletedResolver struct {
	Store ItemStore
}

// OriginalID returns the recorded original identifier for a deleted row.
// Rows without one report false.
func (r DeletedResolver) OriginalID(ctx context.Context, itemType domain.ItemType, id int) (string, bool) {
	d, err := r.Store.GetDeleted(ctx, itemType, id)
	if err != nil || d.OriginalID == "" {
		return "", false
	}
	return d.OriginalID, true
}
