// Command palette-mcp extracts dominant color palettes from images.
//
// With no arguments it serves the palette tools over MCP on stdin/stdout.
// Run "palette-mcp --help" for the shell commands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/palette-tools-mcp/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
