// Package server implements the MCP (Model Context Protocol) server for
// palette extraction.
//
// The server is a thin presentation layer: it loads images, maps tool
// arguments onto palette.Options and formats what palette.Pipeline returns.
// It never interprets colors itself.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - palette_extract: Status message, color list and palette PNG
//   - palette_download: Palette PNG only, or available=false
//   - image_info: Dimensions, format and distinct color count
//
// Both palette tools accept max_colors (5-200, default 50), sort_by_hue
// (default true), square_size, algorithm, region or named_region, and
// max_dimension. Omitted arguments take the server defaults.
//
// # Image Caching
//
// Images are cached by path or URL and reused across tool calls. The cache
// persists for the lifetime of the server process.
//
// # Error Handling
//
// Bad arguments, unreadable files and failed downloads are returned as
// JSON-RPC error responses with code -32000 (or -32602 when the params
// themselves cannot be parsed). A palette that cannot be produced is a
// normal result carrying the pipeline's status string, e.g.
// "no colors found".
//
// # Logging
//
// Diagnostics go to the hclog.Logger in Config, never to stdout.
//
// # Usage
//
//	srv := server.NewWithConfig(server.Config{Logger: logger})
//	if err := srv.Run(ctx); err != nil {
//	    logger.Error("server failed", "error", err)
//	}
package server
