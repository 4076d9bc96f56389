package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/server"
)

type serveOptions struct {
	paletteFlags
	fetchTimeout time.Duration
	maxDimension int
}

func newServeCmd(root *rootOptions) *cobra.Command {
	o := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Run the MCP server on stdin/stdout.

The flags set the defaults used when a tool call omits an argument. Logs are
written to stderr.

Configure it in your MCP client (e.g., Claude Desktop):
  {"command": "palette-mcp", "args": ["serve", "--log-level", "info"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := o.options()
			if err := defaults.Validate(); err != nil {
				return err
			}
			if o.maxDimension < 0 {
				return fmt.Errorf("invalid configuration: max dimension must not be negative, got %d", o.maxDimension)
			}

			srv := server.NewWithConfig(server.Config{
				Logger:       root.logger.Named("server"),
				Defaults:     defaults,
				MaxDimension: o.maxDimension,
				Fetch:        imaging.FetchOptions{Timeout: o.fetchTimeout},
				In:           cmd.InOrStdin(),
				Out:          cmd.OutOrStdout(),
			})
			return srv.Run(cmd.Context())
		},
	}

	o.register(cmd.Flags())
	cmd.Flags().DurationVar(&o.fetchTimeout, "fetch-timeout", imaging.DefaultFetchTimeout, "timeout for loading images from URLs")
	cmd.Flags().IntVar(&o.maxDimension, "max-dimension", 0, "downscale images so neither side exceeds this many pixels when a call omits max_dimension (0 disables)")
	return cmd
}
