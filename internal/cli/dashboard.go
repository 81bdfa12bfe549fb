package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deskgrid/pkg/config"
	"github.com/matzehuels/deskgrid/pkg/dashboard"
	"github.com/matzehuels/deskgrid/pkg/grid"
	deskio "github.com/matzehuels/deskgrid/pkg/io"
	"github.com/matzehuels/deskgrid/pkg/persist"
)

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	var (
		columns, rows int
		force         bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and start an empty dashboard",
		Long: `Write a config file (unless one exists) and reset the profile's dashboard to
an empty grid. A dashboard that already holds widgets is only reset with --force.`,
		Example: `  deskgrid init
  deskgrid init --columns 32 --rows 16 --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("columns") {
				c.cfg.Grid.Columns = columns
			}
			if cmd.Flags().Changed("rows") {
				c.cfg.Grid.Rows = rows
			}
			if err := c.cfg.Validate(); err != nil {
				return err
			}

			path := c.configPath
			if path == "" {
				path = config.Path()
			}
			if _, err := os.Stat(path); err == nil && !force {
				printInfo("Using existing config")
				printFile(path)
			} else {
				if err := c.cfg.Save(path); err != nil {
					return err
				}
				printSuccess("Wrote config")
				printFile(path)
			}

			return c.withDashboard(cmd.Context(), func(svc *dashboard.Service) error {
				if n := len(svc.Store().Widgets()); n > 0 && !force {
					return fmt.Errorf("dashboard %s already has %d widgets; use --force to reset it", c.cfg.Profile, n)
				}
				if err := svc.Reset(cmd.Context(), c.cfg.Grid); err != nil {
					return err
				}
				printSuccess("Dashboard %s ready on a %s grid", StyleHighlight.Render(c.cfg.Profile), c.cfg.Grid)
				printNewline()
				printNextStep("Add a widget", appName+" add clock")
				printNextStep("Edit interactively", appName+" board")
				return nil
			})
		},
	}

	def := grid.Default()
	cmd.Flags().IntVar(&columns, "columns", def.Columns, "grid columns")
	cmd.Flags().IntVar(&rows, "rows", def.Rows, "grid rows")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite the config and reset a non-empty dashboard")

	return cmd
}

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		asJSON bool
		debug  bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the dashboard",
		Long: `Render the grid with one letter per widget at its top-left cell, followed by a
widget table. Locked widgets are marked with *. --debug-grid also draws empty
cells and row and column rulers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDashboard(cmd.Context(), func(svc *dashboard.Service) error {
				snap := svc.Store().Snapshot()
				if asJSON {
					enc := json.NewEncoder(stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(snap)
				}
				fmt.Fprintln(stdout, renderDashboard(snap, debug))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dashboard state as JSON")
	cmd.Flags().BoolVar(&debug, "debug-grid", false, "draw empty cells and rulers")

	return cmd
}

// constraintsCommand creates the constraints command.
func (c *CLI) constraintsCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "constraints [widget-type]",
		Short:             "List widget size limits",
		Long:              `List the minimum, maximum and default size of every widget type, or of one type. Types without limits show "-".`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeWidgetTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDashboard(cmd.Context(), func(svc *dashboard.Service) error {
				reg := svc.Store().Registry()
				types := reg.Types()
				if len(args) == 1 {
					types = args
				}
				fmt.Fprintln(stdout, constraintsTable(reg, types))
				return nil
			})
		},
	}
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard as a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDashboard(cmd.Context(), func(svc *dashboard.Service) error {
				doc := svc.Document()
				if output == "" || output == "-" {
					return deskio.WriteJSON(doc, stdout)
				}
				if err := deskio.ExportJSON(doc, output); err != nil {
					return err
				}
				printSuccess("Exported %d widgets", len(doc.Widgets))
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the dashboard with a JSON document",
		Long: `Replace the dashboard with an exported document. Older document versions are
migrated. Widgets that overlap, fall outside the grid or have an unknown shape
are repaired or dropped, and every change is listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := deskio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if persist.CheckCompatibility(doc.Version) == persist.Incompatible {
				return fmt.Errorf("import %s: %s", args[0], persist.CompatibilityMessage(doc.Version))
			}
			return c.withDashboard(cmd.Context(), func(svc *dashboard.Service) error {
				res, err := svc.Import(cmd.Context(), doc)
				if err != nil {
					return fmt.Errorf("save imported dashboard: %w", err)
				}
				switch res.Mode {
				case persist.ModeClean:
					printSuccess("Imported %d widgets", len(res.Document.Widgets))
				case persist.ModeReset:
					printWarning("Document unusable, dashboard reset")
				default:
					printWarning("Imported %d widgets with repairs (%s)", len(res.Document.Widgets), res.Mode)
				}
				for _, line := range res.Report {
					printDetail("%s", line)
				}
				return nil
			})
		},
	}
}
