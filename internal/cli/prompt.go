package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/nissyi-gh/tasksplit/internal/apperr"
	"github.com/nissyi-gh/tasksplit/internal/model"
	"github.com/nissyi-gh/tasksplit/internal/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [task]",
	Short: "Copy an LLM prompt that breaks a task down",
	Long: `Copy a prompt for an LLM to the clipboard. Without an argument the
prompt asks for new tasks; with a task id or title it asks for the steps of
that task. The answer can be fed back with "tasksplit import".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrompt,
}

var copyToClipboard = clipboard.WriteAll

func init() {
	promptCmd.Flags().Bool("print", false, "Print the prompt instead of copying it")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	printOnly, _ := cmd.Flags().GetBool("print")

	text := prompt.GenerateNew()
	if len(args) == 1 {
		e, err := openEnv(nil)
		if err != nil {
			return err
		}
		defer e.Close()

		task, err := findTask(e.session.Tasks.Tasks(), args[0])
		if err != nil {
			return err
		}
		text = prompt.GenerateFromTask(task)
	}

	if printOnly {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	if err := copyToClipboard(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Prompt copied to clipboard.")
	return nil
}

// findTask matches an exact id first, then a case-insensitive title
// substring.
func findTask(tasks []model.Task, query string) (model.Task, error) {
	for _, t := range tasks {
		if t.ID == query {
			return t, nil
		}
	}
	q := strings.ToLower(query)
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) {
			return t, nil
		}
	}
	return model.Task{}, apperr.NotFound("task", query)
}
