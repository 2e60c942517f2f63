package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"memodeck/internal/config"
	"memodeck/internal/eventbus"
	"memodeck/internal/logic"
	"memodeck/internal/store"
	"memodeck/internal/ui"
)

// App holds the persistent flags shared by every command
type App struct {
	DBPath     string
	ConfigPath string
	Memory     bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "memodeck",
		Short:        "Memos and tasks with a bin you can empty in bulk",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  memodeck

  # Add items from scripts
  memodeck memo add "Buy milk" --body "two litres"
  memodeck task add "Write report" --status doing

  # Fill a scratch database and try bulk delete on it
  memodeck --db /tmp/scratch.db seed --memos 150
  memodeck --db /tmp/scratch.db
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", envOr("MEMODECK_DB", ""), "Path to the SQLite database (default: db_path from the config)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("MEMODECK_CONFIG", ""), "Path to config.toml")
	cmd.PersistentFlags().BoolVar(&app.Memory, "memory", false, "Keep items in memory only; nothing is written to disk")

	cmd.AddCommand(newMemoCmd(app))
	cmd.AddCommand(newTaskCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// loadConfig reads the config file, falling back to defaults when it is missing
func loadConfig(app *App, bus eventbus.EventBus) (*config.Config, error) {
	var svc config.ConfigService
	if bus != nil {
		svc = config.NewConfigServiceWithBus(app.ConfigPath, bus)
	} else {
		svc = config.NewConfigService(app.ConfigPath)
	}
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", svc.Path(), err)
	}
	return cfg, nil
}

// openStore opens the item store selected by the flags and config
func openStore(app *App, cfg *config.Config) (logic.ItemStore, error) {
	if app.Memory {
		return logic.NewMemoryItemStore(), nil
	}

	path := app.DBPath
	if path == "" {
		path = cfg.DBPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	repo, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return repo, nil
}

// forwardedEvents reach the UI as ui.EventMsg
var forwardedEvents = []eventbus.EventType{
	eventbus.EventError,
	eventbus.EventItemsChanged,
	eventbus.EventBatchStarted,
	eventbus.EventBatchFinalized,
	eventbus.EventBatchCancelled,
	eventbus.EventBatchSettled,
	eventbus.EventMutationFailed,
	eventbus.EventRestoreFallback,
	eventbus.EventConfigSaved,
}

func runTUI(parent context.Context, app *App) error {
	if parent == nil {
		parent = context.Background()
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := eventbus.New()
	defer bus.Close()

	cfg, err := loadConfig(app, bus)
	if err != nil {
		return err
	}

	// Set up logging
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	} else {
		log.SetOutput(io.Discard)
	}

	items, err := openStore(app, cfg)
	if err != nil {
		return err
	}
	defer items.Close()

	base, jitter := cfg.Data.Latency()
	items = logic.WithLatency(items, base, jitter)

	uiModel := ui.NewModel(ui.Options{
		Context: ctx,
		Bus:     bus,
		Config:  cfg,
		Store:   items,
	})

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range forwardedEvents {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}

	// Start forwarding events to UI in background
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	if os.Getenv("MEMODECK_E2E_TEST") != "" {
		fmt.Println("__READY__")
	}

	log.Printf("memodeck starting, config %+v", cfg.Bulk)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
