package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/io"
)

// editCommand creates the edit command for the interactive events editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <events.csv>",
		Short: "Edit an events CSV in an interactive table",
		Long: `Edit an events CSV in an interactive table.

The editor loads the CSV (or starts empty when the file does not exist
yet) and lets you navigate cells, edit names and dates, cycle placements,
and add or delete rows. Changes are written back with 's'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(args[0])
		},
	}
}

// runEdit loads the records, runs the editor program, and reports the outcome.
func (c *CLI) runEdit(path string) error {
	records, err := io.ImportCSV(path)
	if err != nil && !errors.Is(err, errors.ErrCodeFileNotFound) {
		return err
	}

	p := tea.NewProgram(NewEditorModel(path, records))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	m, ok := final.(EditorModel)
	if !ok {
		return nil
	}
	switch {
	case m.Dirty:
		printWarning("Quit with unsaved changes")
	case m.Saved:
		printSuccess("Saved %d events", len(m.Records))
		printFile(path)
		printNewline()
		printNextStep("Generate", fmt.Sprintf("eventline generate %s timeline.png", path))
	}
	return nil
}
