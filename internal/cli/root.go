package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/deskgrid/pkg/buildinfo"
	"github.com/matzehuels/deskgrid/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "deskgrid arranges dashboard widgets on a cell grid",
		Long: `deskgrid keeps a dashboard of widgets (clocks, notes, timers, feeds and more)
on a fixed grid of cells. Every change is checked against the grid bounds, the
widget's size limits and the other widgets, and saved after it is applied.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: "+config.Path()+")")
	flags.StringVarP(&c.profile, "profile", "p", "", "dashboard profile")
	flags.StringVar(&c.backend, "backend", "", "storage backend: file, memory, redis, mongo")

	root.AddCommand(c.initCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.lockCommand(true))
	root.AddCommand(c.lockCommand(false))
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.debugGridCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.constraintsCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.completionCommand())

	return root
}
