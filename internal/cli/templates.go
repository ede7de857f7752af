package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage custom breakdowns",
	RunE:  runTemplatesList, // Default action is list
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom breakdowns",
	RunE:  runTemplatesList,
}

var templatesAddCmd = &cobra.Command{
	Use:   "add [trigger] [step...]",
	Short: "Add a custom breakdown",
	Long: `Add a custom breakdown. Any task whose title contains the trigger
(case-insensitive) is broken down into the given steps.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTemplatesAdd,
}

var templatesRemoveCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Remove a custom breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesRemove,
}

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesAddCmd)
	templatesCmd.AddCommand(templatesRemoveCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	templates := e.session.Tasks.Templates()
	if len(templates) == 0 {
		fmt.Fprintln(out, "No custom breakdowns.")
		return nil
	}
	for _, tpl := range templates {
		fmt.Fprintf(out, "%s  %q\n", tpl.ID, tpl.Trigger)
		for _, st := range tpl.Subtasks {
			fmt.Fprintf(out, "    - %s\n", st)
		}
	}
	return nil
}

func runTemplatesAdd(cmd *cobra.Command, args []string) error {
	e, err := openEnv(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	tpl, err := e.session.Tasks.AddTemplate(args[0], args[1:])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %q: %s\n", tpl.Trigger, strings.Join(tpl.Subtasks, ", "))
	return nil
}

func runTemplatesRemove(cmd *cobra.Command, args []string) error {
	e, err := openEnv(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	for _, tpl := range e.session.Tasks.Templates() {
		if tpl.ID == args[0] {
			e.session.Tasks.DeleteTemplate(tpl.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", tpl.Trigger)
			return nil
		}
	}
	return fmt.Errorf("no custom breakdown with id %s", args[0])
}
