package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deskgrid/pkg/dashboard"
	"github.com/matzehuels/deskgrid/pkg/layout"
	"github.com/matzehuels/deskgrid/pkg/store"
)

// withDashboard opens the dashboard, runs fn and reports a failed autosave.
func (c *CLI) withDashboard(ctx context.Context, fn func(svc *dashboard.Service) error) error {
	svc, err := c.openDashboard(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := fn(svc); err != nil {
		return err
	}
	if err := svc.LastSaveError(); err != nil {
		return fmt.Errorf("change applied but not saved: %w", err)
	}
	return nil
}

// applyOne commits op and prints the widget it touched.
func (c *CLI) applyOne(ctx context.Context, op layout.Operation, id, verb string) error {
	return c.withDashboard(ctx, func(svc *dashboard.Service) error {
		if err := svc.Store().Apply(op); err != nil {
			return fmt.Errorf("%s %s: %w", verb, id, err)
		}
		if w, ok := svc.Store().Widget(id); ok {
			printSuccess("%s %s", verb, StyleHighlight.Render(id))
			printDetail("%s at %d,%d size %dx%d", w.WidgetType, w.X, w.Y, w.Width, w.Height)
		} else {
			printSuccess("%s %s", verb, StyleHighlight.Render(id))
		}
		return nil
	})
}

func parseInts(args []string, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer, got %q", name, args[i])
		}
		out[i] = v
	}
	return out, nil
}

// addCommand creates the add command.
func (c *CLI) addCommand() *cobra.Command {
	var (
		p        store.Placement
		x, y     int
		settings string
	)

	cmd := &cobra.Command{
		Use:   "add <widget-type>",
		Short: "Add a widget",
		Long: `Add a widget of the given type.

Without --x/--y the widget goes into the first free slot, scanning rows top to
bottom. The size defaults to the type's default footprint and is clamped to the
type's limits and the grid.`,
		Example: `  deskgrid add clock
  deskgrid add notes --x 4 --y 0 --width 6 --height 4
  deskgrid add quicklinks --settings '{"links":[{"label":"Go","url":"https://go.dev"}]}'`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWidgetTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
				p.X, p.Y = layout.Int(x), layout.Int(y)
			}
			if settings != "" {
				if err := json.Unmarshal([]byte(settings), &p.Settings); err != nil {
					return fmt.Errorf("--settings: %w", err)
				}
			}
			return c.withDashboard(cmd.Context(), func(svc *dashboard.Service) error {
				id, err := svc.Store().Add(args[0], &p)
				if err != nil {
					return fmt.Errorf("add %s: %w", args[0], err)
				}
				w, _ := svc.Store().Widget(id)
				printSuccess("Added %s", StyleHighlight.Render(id))
				printDetail("%s at %d,%d size %dx%d", w.WidgetType, w.X, w.Y, w.Width, w.Height)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&p.ID, "id", "", "widget id (default: <type>-<uuid>)")
	cmd.Flags().IntVar(&x, "x", 0, "column of the top-left cell")
	cmd.Flags().IntVar(&y, "y", 0, "row of the top-left cell")
	cmd.Flags().IntVar(&p.Width, "width", 0, "width in cells (default: type default)")
	cmd.Flags().IntVar(&p.Height, "height", 0, "height in cells (default: type default)")
	cmd.Flags().BoolVar(&p.Locked, "locked", false, "lock the widget in place")
	cmd.Flags().StringVar(&settings, "settings", "", "settings as a JSON object")

	return cmd
}

// moveCommand creates the move command.
func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <x> <y>",
		Short: "Move a widget",
		Long:  `Move a widget's top-left cell. The target is clamped into the grid; moving onto another widget or moving a locked widget is rejected.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseInts(args[1:], "x", "y")
			if err != nil {
				return err
			}
			return c.applyOne(cmd.Context(), layout.MoveWidget{ID: args[0], X: layout.Int(v[0]), Y: layout.Int(v[1])}, args[0], "Moved")
		},
	}
}

// resizeCommand creates the resize command.
func (c *CLI) resizeCommand() *cobra.Command {
	var x, y int

	cmd := &cobra.Command{
		Use:   "resize <id> <width> <height>",
		Short: "Resize a widget",
		Long:  `Resize a widget, optionally moving its origin. The size is clamped to the type's limits and the grid.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseInts(args[1:], "width", "height")
			if err != nil {
				return err
			}
			op := layout.ResizeWidget{ID: args[0], Width: v[0], Height: v[1]}
			if cmd.Flags().Changed("x") {
				op.X = layout.Int(x)
			}
			if cmd.Flags().Changed("y") {
				op.Y = layout.Int(y)
			}
			return c.applyOne(cmd.Context(), op, args[0], "Resized")
		},
	}

	cmd.Flags().IntVar(&x, "x", 0, "new column of the top-left cell")
	cmd.Flags().IntVar(&y, "y", 0, "new row of the top-left cell")

	return cmd
}

// removeCommand creates the remove command.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a widget",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.applyOne(cmd.Context(), layout.RemoveWidget{ID: args[0]}, args[0], "Removed")
		},
	}
}

// lockCommand creates the lock or unlock command.
func (c *CLI) lockCommand(locked bool) *cobra.Command {
	use, short, verb := "lock <id>", "Lock a widget in place", "Locked"
	if !locked {
		use, short, verb = "unlock <id>", "Unlock a widget", "Unlocked"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.applyOne(cmd.Context(), layout.SetWidgetLock{ID: args[0], Locked: locked}, args[0], verb)
		},
	}
}

// settingsCommand creates the settings command.
func (c *CLI) settingsCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "settings <id> [json]",
		Short: "Show or replace a widget's settings",
		Long: `Without a value, print the widget's settings as JSON. With a JSON value (or
--file), replace them. Unknown or out-of-range fields fall back to the type's
defaults; settings never make a change fail.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			var raw []byte
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				raw = data
			case len(args) == 2:
				raw = []byte(args[1])
			}

			if raw == nil {
				return c.withDashboard(cmd.Context(), func(svc *dashboard.Service) error {
					w, ok := svc.Store().Widget(id)
					if !ok {
						return fmt.Errorf("widget %s not found", id)
					}
					enc := json.NewEncoder(stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(w.Settings)
				})
			}

			var settings any
			if err := json.Unmarshal(raw, &settings); err != nil {
				return fmt.Errorf("settings: %w", err)
			}
			return c.applyOne(cmd.Context(), layout.SetWidgetSettings{ID: id, Settings: settings}, id, "Updated settings of")
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read settings from a JSON file")

	return cmd
}

// debugGridCommand creates the debug-grid command.
func (c *CLI) debugGridCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug-grid",
		Short: "Toggle the stored debug-grid overlay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDashboard(cmd.Context(), func(svc *dashboard.Service) error {
				if svc.Store().ToggleDebugGrid() {
					printSuccess("Debug grid on")
				} else {
					printSuccess("Debug grid off")
				}
				return nil
			})
		},
	}
}
