package types

import "memodeck/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

type SwitchTabAction struct {
	Delta int
}

func (a SwitchTabAction) Type() string { return "switch_tab" }

// Selection actions
type SelectAction struct {
	Index int // -1 for current
}

func (a SelectAction) Type() string { return "select" }

type SelectAllAction struct{}

func (a SelectAllAction) Type() string { return "select_all" }

type DeselectAllAction struct{}

func (a DeselectAllAction) Type() string { return "deselect_all" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode // Which mode was cancelled
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Batch actions
type BulkAction struct {
	Operation domain.Operation
}

func (a BulkAction) Type() string { return "bulk" }

type ConfirmBatchAction struct{}

func (a ConfirmBatchAction) Type() string { return "confirm_batch" }

type DeclineBatchAction struct{}

func (a DeclineBatchAction) Type() string { return "decline_batch" }

type CancelBatchAction struct{}

func (a CancelBatchAction) Type() string { return "cancel_batch" }

// Item actions
type AdvanceStatusAction struct{}

func (a AdvanceStatusAction) Type() string { return "advance_status" }

type TogglePreviewAction struct{}

func (a TogglePreviewAction) Type() string { return "toggle_preview" }

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type CycleSortAction struct{}

func (a CycleSortAction) Type() string { return "cycle_sort" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
