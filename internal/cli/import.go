package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nissyi-gh/tasksplit/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import tasks and custom breakdowns from YAML",
	Long: `Import tasks and custom breakdowns from a YAML document.

Pass "-" or no file to read from stdin. The document looks like:

  templates:
    - trigger: morning routine
      steps: [Stretch, Shower, Breakfast]
  tasks:
    - title: Write quarterly report
      energy: high
      steps: [Collect numbers, Draft, Review]`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	e, err := openEnv(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := importer.Import(e.session.Tasks, string(data))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks and %d custom breakdowns.\n", res.Tasks, res.Templates)
	return nil
}
