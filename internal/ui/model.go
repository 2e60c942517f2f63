package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"memodeck/internal/bulk"
	"memodeck/internal/config"
	"memodeck/internal/domain"
	"memodeck/internal/eventbus"
	"memodeck/internal/logic"
	"memodeck/internal/ui/commands"
	"memodeck/internal/ui/handlers"
	"memodeck/internal/ui/input"
	inputtypes "memodeck/internal/ui/input/types"
	uilogic "memodeck/internal/ui/logic"
	"memodeck/internal/ui/state"
	"memodeck/internal/ui/viewmodels"
	"memodeck/internal/ui/views"
)

// statusTimeout is how long a status message stays up
const statusTimeout = 3 * time.Second

// Options configures a Model
type Options struct {
	Context context.Context
	Bus     eventbus.EventBus
	Config  *config.Config
	Store   logic.ItemStore
	// Scheduler replaces the update-loop scheduler, e.g. with a ManualClock in tests
	Scheduler bulk.Scheduler
}

// Model represents the UI state
type Model struct {
	ctx    context.Context
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state
	store  logic.ItemStore

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	spinner     spinner.Model
	spinning    bool
	currentSort uilogic.SortMode
	inPagerMode bool
	helpScroll  int
	lastStatus  string

	// Bulk lifecycle
	loop      *LoopScheduler // nil when Options.Scheduler is set
	rendered  *bulk.RenderedRows
	selection *bulk.SelectionStore
	orch      *bulk.Orchestrator

	// Handlers
	filter       *uilogic.ItemFilter
	navigator    *uilogic.Navigator
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// BulkSettings converts the [bulk] config section
func BulkSettings(cfg *config.Config) bulk.Settings {
	s := bulk.DefaultSettings()
	if cfg == nil {
		return s
	}
	b := cfg.Bulk
	s.Cap = b.Cap
	s.CountCap = b.CountCap
	s.AnimationDuration = b.AnimationDuration()
	s.Interval = b.Interval()
	s.SettleDelay = b.SettleDelay()
	s.LidCloseDelay = b.LidCloseDelay()
	s.ProcessingEndDelay = b.ProcessingEndDelay()
	if easing, ok := bulk.EasingByName(b.Easing); ok {
		s.Easing = easing
	}
	return s
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	appState := state.NewAppState()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:          opts.Context,
		bus:          opts.Bus,
		config:       opts.Config,
		state:        appState,
		store:        opts.Store,
		help:         help.New(),
		spinner:      sp,
		rendered:     &bulk.RenderedRows{},
		selection:    bulk.NewSelectionStore(),
		filter:       uilogic.NewItemFilter(),
		navigator:    uilogic.NewNavigator(),
		renderer:     views.NewRenderer(opts.Config.UISettings.RenderMarkdown),
		inputHandler: input.New(),
		helpRenderer: NewHelpRenderer(),
	}
	if sort, ok := uilogic.ParseSortMode(opts.Config.UISettings.DefaultSort); ok {
		m.currentSort = sort
	}

	sched := opts.Scheduler
	if sched == nil {
		m.loop = NewLoopScheduler()
		sched = m.loop
	}

	settings := BulkSettings(opts.Config)
	m.orch = bulk.New(bulk.Deps{
		Order:     m.rendered,
		Selection: m.selection,
		Mutations: bulk.NewStoreMutations(opts.Store, opts.Config.Bulk.Concurrency, opts.Bus),
		Animator:  bulk.NewConvergence(sched, settings.AnimationDuration, settings.Interval, m.onFrame),
		Presenter: m,
		Sink:      m,
		Scheduler: sched,
		Bus:       opts.Bus,
		Context:   opts.Context,
	}, settings)

	m.eventHandler = handlers.NewEventHandler(appState, m.reloadType)
	m.eventHandler.SetAfterBatch(m.reloadPartners)
	m.cmdExecutor = commands.NewExecutor(&commands.CommandContext{
		Ctx:          opts.Context,
		State:        appState,
		Bus:          opts.Bus,
		Store:        opts.Store,
		Orchestrator: m.orch,
		Selection:    m.selection,
	})
	m.viewModel = viewmodels.NewViewModel(appState, opts.Config, m.selection)
	m.viewModel.SetHelp(m.help)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Orchestrator exposes the bulk lifecycle driver
func (m *Model) Orchestrator() *bulk.Orchestrator {
	return m.orch
}

// Init loads every tab so the tab bar shows counts from the start
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.state.Tabs))
	for _, key := range m.state.Tabs {
		cmds = append(cmds, m.cmdExecutor.ExecuteLoad(key))
	}
	return tea.Batch(cmds...)
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		State:        m.state,
		Orchestrator: m.orch,
		Selection:    m.selection,
	}
}

// Update handles messages. Timers armed while handling msg are drained into
// the returned command.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.update(msg)}

	if m.loop != nil {
		cmds = append(cmds, m.loop.Drain())
	}
	if m.state.Processing && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	if s := m.state.StatusMessage; s != "" && s != m.lastStatus {
		cmds = append(cmds, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{message: s}
		}))
	}
	m.lastStatus = m.state.StatusMessage

	return m, tea.Batch(cmds...)
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewModel.SetHelp(m.help)
		m.updateViewportHeight()
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		// Handle non-keyboard messages
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Handle the help popup first
	if m.state.ShowHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.state.ShowHelp = false
			m.helpScroll = 0
		case "j", "down":
			m.helpScroll++
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		}
		return nil
	}
	if m.state.ShowPreview && msg.String() == "q" {
		m.state.ShowPreview = false
		return nil
	}

	actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

// View renders the UI
func (m *Model) View() string {
	// Record the rendered order before anything can read it
	rows := make([]bulk.Row, len(m.state.Visible))
	for i, it := range m.state.Visible {
		rows[i] = bulk.Row{ItemType: it.ItemType, ID: it.ID}
	}
	m.rendered.Set(rows)

	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	if ti := m.inputHandler.TextInput(); ti != nil {
		m.viewModel.SetInput(m.inputHandler.ModeName(), m.inputHandler.Prompt(), ti.View())
	} else {
		m.viewModel.SetInput("", "", "")
	}
	m.viewModel.SetSortLabel(m.currentSort.String())
	if m.state.ShowHelp {
		m.viewModel.SetHelpContent(m.helpRenderer.RenderHelpContent(m.height, m.helpScroll))
	}
	if m.state.Processing {
		m.viewModel.SetSpinner(m.spinner.View())
	} else {
		m.viewModel.SetSpinner("")
	}

	return m.renderer.Render(m.viewModel.BuildViewState())
}

// refreshVisible rebuilds the visible list of the current tab
func (m *Model) refreshVisible() {
	key := m.state.CurrentTab()
	items := m.filter.Apply(m.state.Items[key], m.state.FilterQuery)
	uilogic.SortItems(items, m.currentSort)
	m.state.Visible = items
	m.state.ClampCursor()
	m.ensureSelectedVisible()
}

// updateViewportHeight calculates the available height for the list
func (m *Model) updateViewportHeight() {
	// Padding (2), title and tabs (3), prompt (2), footer (3)
	reservedLines := 10

	m.state.ViewportHeight = m.height - reservedLines
	if m.state.ViewportHeight < 1 {
		m.state.ViewportHeight = 1
	}
	m.ensureSelectedVisible()
}

func (m *Model) syncNavigatorState() {
	m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, len(m.state.Visible))
}

// ensureSelectedVisible adjusts the viewport to keep the cursor visible
func (m *Model) ensureSelectedVisible() {
	m.syncNavigatorState()
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.SelectedIndex)
}

// switchTab cancels any batch and shows the tab delta steps away
func (m *Model) switchTab(delta int) tea.Cmd {
	cancelled := m.cancelBatch("tab switched")

	n := len(m.state.Tabs)
	m.state.ActiveTab = ((m.state.ActiveTab+delta)%n + n) % n
	key := m.state.CurrentTab()

	m.selection.Clear(key)
	m.state.SelectedIndex = 0
	m.state.ViewportOffset = 0
	m.state.ShowPreview = false
	m.rendered.Reset()
	m.refreshVisible()

	return tea.Batch(cancelled, m.cmdExecutor.ExecuteLoad(key))
}

// cancelBatch stops the running batch, if any, and clears its traces. The
// selection of the cancelled batch is dropped. Mutations it already issued
// keep running; the returned command waits for them so the affected tabs
// can be reloaded.
func (m *Model) cancelBatch(reason string) tea.Cmd {
	d, active := m.orch.Descriptor()
	issued := m.orch.State() == bulk.Animating || m.orch.State() == bulk.Finalizing
	flight := m.orch.Flight()

	m.orch.Cancel(reason)
	m.state.ClearConfirmation()
	m.state.Animating = false
	m.state.Frame = bulk.Frame{}
	if m.inputHandler.CurrentMode() == inputtypes.ModeConfirm {
		m.inputHandler.EnterMode(inputtypes.ModeNormal, m.inputContext())
	}

	if !active {
		return nil
	}
	m.selection.Clear(d.Key)
	if !issued || flight == nil {
		return nil
	}
	return func() tea.Msg {
		<-flight.Done()
		return flightSettledMsg{desc: d}
	}
}

// reloadPartners reloads the tabs of itemType that op moved items into.
// The current tab is left alone; its rows are removed by the batch itself.
func (m *Model) reloadPartners(itemType domain.ItemType, op domain.Operation) tea.Cmd {
	current := m.state.CurrentTab()
	var cmds []tea.Cmd
	for _, key := range m.state.Tabs {
		if key.ItemType != itemType || key == current {
			continue
		}
		inBin := key.Tab == domain.TabDeleted
		if (op == domain.OpDelete && inBin) || (op == domain.OpRestore && !inBin) {
			cmds = append(cmds, m.cmdExecutor.ExecuteLoad(key))
		}
	}
	return tea.Batch(cmds...)
}

// reconcileCancelled reloads the tab of a cancelled batch once its
// mutations settled, unless another batch is now working on that tab
func (m *Model) reconcileCancelled(d bulk.Descriptor) tea.Cmd {
	if running, ok := m.orch.Descriptor(); ok && running.Key == d.Key {
		return m.reloadPartners(d.ItemType, d.Operation)
	}
	return tea.Batch(
		m.cmdExecutor.ExecuteLoad(d.Key),
		m.reloadPartners(d.ItemType, d.Operation),
	)
}

// beginBatch asks for confirmation of op on the current selection. With
// nothing selected the item under the cursor is used.
func (m *Model) beginBatch(op domain.Operation) tea.Cmd {
	key := m.state.CurrentTab()
	if m.selection.Count(key) == 0 {
		if item, ok := m.state.ItemAt(m.state.SelectedIndex); ok {
			m.selection.Toggle(key, item.ID)
		}
	}

	_, err := m.orch.Begin(key, op)
	switch {
	case err == nil:
	case errors.Is(err, bulk.ErrBatchInProgress):
		m.state.StatusMessage = "Another batch is still running"
	case errors.Is(err, bulk.ErrEmptySelection):
		m.state.StatusMessage = "Nothing selected"
	case errors.Is(err, bulk.ErrUnsupported):
		m.state.StatusMessage = fmt.Sprintf("Cannot %s on this tab", op)
	default:
		m.state.StatusMessage = fmt.Sprintf("Error: %v", err)
	}
	return nil
}

// reloadType refreshes the current tab when it shows itemType and no batch is running
func (m *Model) reloadType(itemType domain.ItemType) tea.Cmd {
	key := m.state.CurrentTab()
	if key.ItemType != itemType || m.orch.Busy() {
		return nil
	}
	return m.cmdExecutor.ExecuteLoad(key)
}

// fetchHelpPager returns a command that shows help using the ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	if _, nav := action.(inputtypes.NavigateAction); !nav {
		log.Printf("processAction: %T", action)
	}
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.syncNavigatorState()
		switch a.Direction {
		case "up":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(-1)
		case "down":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(1)
		case "home":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(0)
		case "end":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.navigator.GetMaxIndex())
		case "pageup":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Page(false)
		case "pagedown":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Page(true)
		}

	case inputtypes.SwitchTabAction:
		return m.switchTab(a.Delta)

	case inputtypes.SelectAction:
		index := a.Index
		if index < 0 {
			index = m.state.SelectedIndex
		}
		if item, ok := m.state.ItemAt(index); ok {
			return m.cmdExecutor.ExecuteToggleSelection(item.ID)
		}

	case inputtypes.SelectAllAction:
		return m.cmdExecutor.ExecuteSelectAll()

	case inputtypes.DeselectAllAction:
		m.selection.Clear(m.state.CurrentTab())

	case inputtypes.BulkAction:
		return m.beginBatch(a.Operation)

	case inputtypes.ConfirmBatchAction:
		m.state.ClearConfirmation()
		if err := m.orch.Confirm(); err != nil {
			m.state.StatusMessage = fmt.Sprintf("Error: %v", err)
		}

	case inputtypes.DeclineBatchAction:
		m.state.ClearConfirmation()
		m.orch.Decline()

	case inputtypes.CancelBatchAction:
		if m.orch.Busy() {
			return m.cancelBatch("cancelled by user")
		}

	case inputtypes.AdvanceStatusAction:
		if item, ok := m.state.ItemAt(m.state.SelectedIndex); ok {
			return m.cmdExecutor.ExecuteAdvance(item)
		}

	case inputtypes.TogglePreviewAction:
		m.state.ShowPreview = !m.state.ShowPreview

	case inputtypes.RefreshAction:
		if m.orch.Busy() {
			m.state.StatusMessage = "Wait for the running batch to finish"
			return nil
		}
		m.state.StatusMessage = "Reloading..."
		return m.cmdExecutor.ExecuteLoad(m.state.CurrentTab())

	case inputtypes.CycleSortAction:
		m.currentSort = m.currentSort.Next()
		m.refreshVisible()
		m.state.StatusMessage = "Sorted by " + m.currentSort.String()

	case inputtypes.ToggleHelpAction:
		if m.program != nil && !m.inPagerMode {
			return m.fetchHelpPager(m.helpRenderer.RenderHelpContentPlain())
		}
		m.state.ShowHelp = true

	case inputtypes.UpdateTextAction:
		if m.inputHandler.CurrentMode() == inputtypes.ModeFilter {
			m.state.FilterQuery = a.Text
			m.refreshVisible()
		}

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeFilter:
			m.state.FilterQuery = strings.TrimSpace(a.Text)
			m.refreshVisible()
		case inputtypes.ModeNewItem:
			return m.cmdExecutor.ExecuteCreate(m.state.CurrentTab(), strings.TrimSpace(a.Text))
		}

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.state.FilterQuery = ""
			m.refreshVisible()
		}

	case inputtypes.QuitAction:
		m.cancelBatch("quit")
		return tea.Quit
	}

	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case timerFiredMsg:
		if m.loop != nil {
			m.loop.Fire(msg.id)
		}

	case spinner.TickMsg:
		if !m.state.Processing {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case EventMsg:
		return m.eventHandler.HandleEvent(msg.Event)

	case flightSettledMsg:
		return m.reconcileCancelled(msg.desc)

	case commands.ItemsLoadedMsg:
		if msg.Err != nil {
			delete(m.state.Loading, msg.Key)
			log.Printf("load %s: %v", msg.Key, msg.Err)
			m.state.StatusMessage = fmt.Sprintf("Error: could not load %s: %v", viewmodels.TabLabel(msg.Key), msg.Err)
			return nil
		}
		m.state.SetItems(msg.Key, msg.Items)
		if msg.Key == m.state.CurrentTab() {
			m.refreshVisible()
			m.orch.PruneSelection(msg.Key, m.state.LoadedIDs(msg.Key))
			if m.state.StatusMessage == "Reloading..." {
				m.state.StatusMessage = ""
			}
		}

	case commands.ItemChangedMsg:
		if msg.Err != nil {
			m.state.StatusMessage = fmt.Sprintf("Error: %v", msg.Err)
			return nil
		}
		m.state.StatusMessage = msg.Message
		if m.bus != nil {
			m.bus.Publish(eventbus.ItemsChangedEvent{ItemType: msg.ItemType})
			return nil
		}
		return m.reloadType(msg.ItemType)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed, fall back to the popup
			log.Printf("Help pager failed: %v", msg.err)
			m.state.ShowHelp = true
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case clearStatusMsg:
		if m.state.StatusMessage == msg.message {
			m.state.StatusMessage = ""
		}
	}

	return nil
}
