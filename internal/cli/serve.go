package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/deskgrid/internal/server"
	"github.com/matzehuels/deskgrid/pkg/config"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Serve the dashboard as a JSON API under /api. Every mutation is saved to the
configured backend. The server stops cleanly on interrupt.

Rejected changes answer 409 (collision, out of bounds, locked, duplicate id,
no free slot), 404 (unknown widget) or 400 (malformed request), with a body
of the form {"error": "COLLISION", "message": "..."}.`,
		Example: `  deskgrid serve
  deskgrid serve --addr :8080 --backend redis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			svc, err := c.openDashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			srv := server.New(svc, server.WithLogger(c.Logger))
			printInfo("Serving dashboard %s on %s", StyleHighlight.Render(c.cfg.Profile), StyleValue.Render("http://"+addr+"/api/dashboard"))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config, "+config.DefaultAddr+")")

	return cmd
}
