// Package cli provides the command-line interface for palette-mcp.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-tools-mcp/internal/version"
)

// LogLevelEnv overrides the default of the --log-level flag.
const LogLevelEnv = "PALETTE_MCP_LOG_LEVEL"

const defaultLogLevel = "warn"

// rootOptions holds state shared by every subcommand.
type rootOptions struct {
	logLevel string
	logger   hclog.Logger
}

// NewRootCmd builds the full command tree. Running it without a subcommand
// starts the MCP server on stdio, so existing MCP client configurations that
// launch the bare binary keep working.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	serve := newServeCmd(opts)

	cmd := &cobra.Command{
		Use:   "palette-mcp",
		Short: "Dominant color palette extraction for MCP clients and the shell",
		Long: `palette-mcp reduces an image to its dominant colors and renders them as a
square grid of color swatches.

Without a subcommand it runs as an MCP server over stdin/stdout. Use the
extract command to build a palette directly from the shell.`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		RunE: serve.RunE,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", envOr(LogLevelEnv, defaultLogLevel),
		"log level (trace, debug, info, warn, error, off); env "+LogLevelEnv)
	cmd.Flags().AddFlagSet(serve.Flags())

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(serve)
	cmd.AddCommand(newExtractCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// newLogger builds the process logger. Logs always go to w, which is stderr
// in production: stdout carries the MCP protocol.
func newLogger(level string, w io.Writer) (hclog.Logger, error) {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log level: %q (valid levels: trace, debug, info, warn, error, off)", level)
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "palette-mcp",
		Level:  lvl,
		Output: w,
	}), nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build time, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
