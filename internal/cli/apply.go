package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deskgrid/pkg/dashboard"
	"github.com/matzehuels/deskgrid/pkg/errors"
	deskio "github.com/matzehuels/deskgrid/pkg/io"
	"github.com/matzehuels/deskgrid/pkg/layout"
)

// applyCommand creates the apply command.
func (c *CLI) applyCommand() *cobra.Command {
	var (
		format      string
		stopOnError bool
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "apply <script>",
		Short: "Run a script of layout operations",
		Long: `Run a JSON or YAML list of tagged operations in order. Each entry has a "type"
(addWidget, moveWidget, resizeWidget, removeWidget, setWidgetLock,
setWidgetSettings) and the fields of that operation. A rejected operation is
reported and skipped; later operations still run unless --stop-on-error is set.

Use - to read the script from stdin.`,
		Example: `  deskgrid apply layout.yaml
  deskgrid apply --dry-run layout.json
  cat ops.json | deskgrid apply - --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := readScript(cmd.InOrStdin(), args[0], format)
			if err != nil {
				return err
			}

			svc, err := c.openDashboard(cmd.Context(), dashboard.WithAutosave(!dryRun))
			if err != nil {
				return err
			}
			defer svc.Close()

			prog := newProgress(c.Logger)
			st := svc.Store()
			rejected := 0
			for i, op := range ops {
				target := operationTarget(op)
				if err := st.Apply(op); err != nil {
					rejected++
					printError("%d %s %s: %s", i+1, op.Kind(), target, StyleError.Render(errors.UserMessage(err)))
					if stopOnError {
						break
					}
					continue
				}
				if target == "" {
					if ws := st.Widgets(); len(ws) > 0 {
						target = ws[len(ws)-1].ID
					}
				}
				printSuccess("%d %s %s", i+1, op.Kind(), StyleHighlight.Render(target))
			}
			prog.done(fmt.Sprintf("Applied %d of %d operations", len(ops)-rejected, len(ops)))

			if dryRun {
				printNewline()
				fmt.Fprintln(stdout, renderDashboard(st.Snapshot(), false))
				printInfo("Dry run, nothing saved")
			} else if err := svc.LastSaveError(); err != nil {
				return fmt.Errorf("operations applied but not saved: %w", err)
			}

			if rejected > 0 {
				return fmt.Errorf("%d of %d operations rejected", rejected, len(ops))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "script format: json or yaml (default: from extension)")
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "stop at the first rejected operation")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "apply to a scratch copy and print the result")

	return cmd
}

// readScript reads operations from path, or from stdin when path is "-".
func readScript(stdin io.Reader, path, format string) ([]layout.Operation, error) {
	f := deskio.FormatFromPath(path)
	if format != "" {
		parsed, err := deskio.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		f = parsed
	}

	r := stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer file.Close()
		r = file
	}

	ops, err := deskio.ReadOperations(r, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ops, nil
}

// operationTarget returns the widget id an operation refers to. Adds
// without an explicit id return "".
func operationTarget(op layout.Operation) string {
	switch o := op.(type) {
	case layout.AddWidget:
		return o.Layout.ID
	case layout.MoveWidget:
		return o.ID
	case layout.ResizeWidget:
		return o.ID
	case layout.RemoveWidget:
		return o.ID
	case layout.SetWidgetLock:
		return o.ID
	case layout.SetWidgetSettings:
		return o.ID
	}
	return ""
}
