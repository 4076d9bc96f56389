package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/palette"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "palette_extract", "image_info").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// A palette that could not be produced is not a tool error: its status
// string is part of the normal result.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies server defaults for optional parameters
//  3. Loads the image from cache, disk or URL
//  4. Runs the palette pipeline
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "palette_extract":
		return s.handlePaletteExtract(ctx, args)
	case "palette_download":
		return s.handlePaletteDownload(ctx, args)
	case "image_info":
		return s.handleImageInfo(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Palette Handlers ===

type paletteArgs struct {
	Path         string          `json:"path"`
	MaxColors    *int            `json:"max_colors"`
	SortByHue    *bool           `json:"sort_by_hue"`
	SquareSize   int             `json:"square_size"`
	Algorithm    string          `json:"algorithm"`
	Region       *imaging.Region `json:"region,omitempty"`
	NamedRegion  string          `json:"named_region"`
	MaxDimension *int            `json:"max_dimension"`
}

// options merges the arguments over the server defaults and validates them.
func (s *Server) options(a paletteArgs) (palette.Options, error) {
	opts := s.defaults
	if a.MaxColors != nil {
		opts.MaxColors = *a.MaxColors
	}
	if a.SortByHue != nil {
		opts.SortByHue = *a.SortByHue
	}
	if a.SquareSize != 0 {
		opts.SquareSize = a.SquareSize
	}
	if a.Algorithm != "" {
		opts.Algorithm = palette.Algorithm(a.Algorithm)
	}
	if a.MaxDimension != nil && *a.MaxDimension < 0 {
		return opts, fmt.Errorf("max_dimension must not be negative, got %d", *a.MaxDimension)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// loadSelection resolves the image for a palette request. An empty path is
// not an error: it yields a nil image so the pipeline reports the missing
// input itself.
func (s *Server) loadSelection(ctx context.Context, a paletteArgs) (image.Image, error) {
	if a.Path == "" {
		return nil, nil
	}
	src, err := s.cache.Load(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	sel := imaging.Selection{Region: a.Region, Named: a.NamedRegion, MaxDimension: s.maxDimension}
	if a.MaxDimension != nil {
		sel.MaxDimension = *a.MaxDimension
	}
	return sel.Apply(src.Image)
}

// prepare parses the arguments shared by the palette tools.
func (s *Server) prepare(ctx context.Context, args json.RawMessage) (*palette.Pipeline, palette.Options, image.Image, error) {
	var a paletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, palette.Options{}, nil, err
	}
	opts, err := s.options(a)
	if err != nil {
		return nil, opts, nil, err
	}
	p, err := palette.NewFromOptions(opts, s.logger.Named("pipeline"))
	if err != nil {
		return nil, opts, nil, err
	}
	img, err := s.loadSelection(ctx, a)
	if err != nil {
		return nil, opts, nil, err
	}
	return p, opts, img, nil
}

// PaletteColor describes one palette entry.
type PaletteColor struct {
	Hex string        `json:"hex"`
	RGB palette.Pixel `json:"rgb"`
	HSV [3]float64    `json:"hsv"`
}

// PaletteResult is returned by palette_extract.
type PaletteResult struct {
	Status  string                `json:"status"`
	Outcome string                `json:"outcome"`
	Count   int                   `json:"count"`
	Colors  []PaletteColor        `json:"colors"`
	Image   *imaging.EncodedImage `json:"image"`
}

func describeColors(colors []palette.Pixel) []PaletteColor {
	out := make([]PaletteColor, len(colors))
	for i, c := range colors {
		h, sat, v := c.HSV()
		out[i] = PaletteColor{Hex: c.Hex(), RGB: c, HSV: [3]float64{h, sat, v}}
	}
	return out
}

func (s *Server) handlePaletteExtract(ctx context.Context, args json.RawMessage) (interface{}, error) {
	p, opts, img, err := s.prepare(ctx, args)
	if err != nil {
		return nil, err
	}

	res := p.Process(img, opts.MaxColors, opts.SortByHue)
	out := &PaletteResult{
		Status:  res.Status,
		Outcome: res.Outcome.String(),
		Count:   len(res.Colors),
		Colors:  describeColors(res.Colors),
	}
	if res.OK() {
		out.Image, err = imaging.EncodeBase64PNG(res.Image)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DownloadResult is returned by palette_download. The image fields are
// omitted whenever no palette could be produced, and no reason is given.
type DownloadResult struct {
	Available bool `json:"available"`
	*imaging.EncodedImage
}

func (s *Server) handlePaletteDownload(ctx context.Context, args json.RawMessage) (interface{}, error) {
	p, opts, img, err := s.prepare(ctx, args)
	if err != nil {
		return nil, err
	}

	data := p.Download(img, opts.MaxColors, opts.SortByHue)
	if data == nil {
		return &DownloadResult{Available: false}, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read palette dimensions: %w", err)
	}
	return &DownloadResult{
		Available:    true,
		EncodedImage: imaging.WrapPNG(image.Rect(0, 0, cfg.Width, cfg.Height), data),
	}, nil
}

// === Image Information Handlers ===

type imageInfoArgs struct {
	Path string `json:"path"`
}

// ImageInfoResult is returned by image_info.
type ImageInfoResult struct {
	imaging.Info
	UniqueColors int `json:"unique_colors"`
}

func (s *Server) handleImageInfo(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, err := s.cache.Load(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	return &ImageInfoResult{
		Info:         imaging.Describe(src),
		UniqueColors: palette.CountColors(src.Image).Len(),
	}, nil
}
