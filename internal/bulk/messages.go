package bulk

import (
	"fmt"

	"memodeck/internal/domain"
)

// ConfirmationMessage is the prompt shown before d runs. Partial batches say
// how many were selected and how many this run will process.
func ConfirmationMessage(d Descriptor) string {
	n := len(d.Targets)
	noun := d.ItemType.Noun(n)

	switch d.Operation {
	case domain.OpRestore:
		if d.Partial {
			return fmt.Sprintf("%d deleted %s selected for restore, first %d restored now. Run restore again for the rest.",
				d.TotalSelected, d.ItemType.Noun(d.TotalSelected), n)
		}
		return fmt.Sprintf("Restore %d %s?", n, noun)
	case domain.OpPurge:
		if d.Partial {
			return fmt.Sprintf("%d selected, first %d processed. Permanently delete them? This cannot be undone.", d.TotalSelected, n)
		}
		return fmt.Sprintf("Permanently delete %d %s? This cannot be undone.", n, noun)
	default:
		if d.Partial {
			return fmt.Sprintf("%d selected, first %d processed. Move them to the bin?", d.TotalSelected, n)
		}
		return fmt.Sprintf("Move %d %s to the bin?", n, noun)
	}
}
