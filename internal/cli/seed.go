package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"memodeck/internal/domain"
	"memodeck/internal/logic"
)

var seedStatuses = []domain.TaskStatus{domain.StatusTodo, domain.StatusDoing, domain.StatusDone}

func newSeedCmd(app *App) *cobra.Command {
	var memos, tasks int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with sample memos and tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if memos < 0 || tasks < 0 {
				return fmt.Errorf("counts must not be negative")
			}
			return withStore(app, func(s logic.ItemStore) error {
				if err := seed(cmd.Context(), s, memos, tasks); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d %s and %d %s\n",
					memos, domain.ItemMemo.Noun(memos), tasks, domain.ItemTask.Noun(tasks))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&memos, "memos", 20, "Number of memos to add")
	cmd.Flags().IntVar(&tasks, "tasks", 12, "Number of tasks to add, spread over todo, doing and done")
	return cmd
}

// seed adds sample items. Tasks rotate through the statuses.
func seed(ctx context.Context, s logic.ItemStore, memos, tasks int) error {
	for i := 1; i <= memos; i++ {
		body := fmt.Sprintf("# Sample memo %d\n\nSeeded for trying out **bulk delete**.\n\n- select with `space`\n- delete with `d`\n", i)
		if _, err := s.CreateMemo(ctx, fmt.Sprintf("Sample memo %d", i), body); err != nil {
			return fmt.Errorf("seed memo %d: %w", i, err)
		}
	}
	for i := 1; i <= tasks; i++ {
		status := seedStatuses[(i-1)%len(seedStatuses)]
		if _, err := s.CreateTask(ctx, fmt.Sprintf("Sample task %d", i), status); err != nil {
			return fmt.Errorf("seed task %d: %w", i, err)
		}
	}
	return nil
}
