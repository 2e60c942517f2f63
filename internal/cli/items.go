package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"memodeck/internal/domain"
	"memodeck/internal/logic"
)

// withStore runs fn against the store selected by app and closes it afterwards
func withStore(app *App, fn func(s logic.ItemStore) error) error {
	cfg, err := loadConfig(app, nil)
	if err != nil {
		return err
	}
	s, err := openStore(app, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func newMemoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memo",
		Short: "Manage memos",
	}

	var body string
	add := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a memo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return fmt.Errorf("memo title must not be empty")
			}
			return withStore(app, func(s logic.ItemStore) error {
				m, err := s.CreateMemo(cmd.Context(), title, body)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added memo %d\n", m.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&body, "body", "", "Memo body (markdown)")

	cmd.AddCommand(add)
	return cmd
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	var status string
	add := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return fmt.Errorf("task title must not be empty")
			}
			st, err := parseStatus(status)
			if err != nil {
				return err
			}
			return withStore(app, func(s logic.ItemStore) error {
				t, err := s.CreateTask(cmd.Context(), title, st)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added task %d (%s)\n", t.ID, t.Status)
				return nil
			})
		},
	}
	add.Flags().StringVar(&status, "status", string(domain.StatusTodo), "Initial status (todo|doing|done)")

	cmd.AddCommand(add)
	return cmd
}

func parseStatus(s string) (domain.TaskStatus, error) {
	if st, ok := domain.ParseTaskStatus(s); ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown task status %q (want todo, doing or done)", s)
}

func newListCmd(app *App) *cobra.Command {
	var itemType string
	cmd := &cobra.Command{
		Use:       "list memos|tasks|deleted",
		Short:     "List items",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"memos", "tasks", "deleted"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(app, func(s logic.ItemStore) error {
				ctx := cmd.Context()
				now := time.Now()
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				defer w.Flush()

				switch args[0] {
				case "memos":
					memos, err := s.ListMemos(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintln(w, "ID\tTITLE\tCREATED")
					for _, m := range memos {
						fmt.Fprintf(w, "%d\t%s\t%s\n", m.ID, m.Title, age(m.CreatedAt, now))
					}
				case "tasks":
					fmt.Fprintln(w, "ID\tSTATUS\tTITLE\tCREATED")
					for _, st := range []domain.TaskStatus{domain.StatusTodo, domain.StatusDoing, domain.StatusDone} {
						tasks, err := s.ListTasks(ctx, st)
						if err != nil {
							return err
						}
						for _, t := range tasks {
							fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Status, t.Title, age(t.CreatedAt, now))
						}
					}
				case "deleted":
					return listDeleted(ctx, w, s, domain.ItemType(itemType), now)
				default:
					return fmt.Errorf("unknown list %q (want memos, tasks or deleted)", args[0])
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&itemType, "type", "", "Only deleted items of this type (memo|task)")
	return cmd
}

func listDeleted(ctx context.Context, w io.Writer, s logic.ItemStore, only domain.ItemType, now time.Time) error {
	fmt.Fprintln(w, "ID\tTYPE\tTITLE\tDELETED")
	for _, it := range []domain.ItemType{domain.ItemMemo, domain.ItemTask} {
		if only != "" && only != it {
			continue
		}
		deleted, err := s.ListDeleted(ctx, it)
		if err != nil {
			return err
		}
		for _, d := range deleted {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", d.ID, d.ItemType, d.Title, age(d.DeletedAt, now))
		}
	}
	return nil
}

func age(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
