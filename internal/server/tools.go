package server

import (
	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/palette"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func algorithmNames() []string {
	algs := palette.ValidAlgorithms()
	out := make([]string, len(algs))
	for i, a := range algs {
		out[i] = string(a)
	}
	return out
}

// paletteProperties are the arguments shared by palette_extract and
// palette_download.
func paletteProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file, or an http(s) URL. When omitted the tool reports \"no image provided\".",
		},
		"max_colors": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of colors in the palette (default 50)",
			"minimum":     palette.MinColorBudget,
			"maximum":     palette.MaxColorBudget,
			"default":     palette.DefaultMaxColors,
		},
		"sort_by_hue": map[string]interface{}{
			"type":        "boolean",
			"description": "Order colors by hue, then brightness (default true)",
			"default":     true,
		},
		"square_size": map[string]interface{}{
			"type":        "integer",
			"description": "Side of each palette cell in pixels (default 50)",
			"minimum":     1,
			"default":     palette.DefaultSquareSize,
		},
		"algorithm": map[string]interface{}{
			"type":        "string",
			"enum":        algorithmNames(),
			"description": "Color reduction algorithm. Only 'kmeans' is reproducible between runs.",
			"default":     string(palette.AlgorithmKMeans),
		},
		"region": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required":    []string{"x1", "y1", "x2", "y2"},
			"description": "Optional region to analyze. If omitted, analyzes entire image.",
		},
		"named_region": map[string]interface{}{
			"type":        "string",
			"enum":        imaging.NamedRegions(),
			"description": "Optional named region to analyze. Ignored when region is set.",
		},
		"max_dimension": map[string]interface{}{
			"type":        "integer",
			"description": "Downscale so neither side exceeds this many pixels before extraction (0 disables). Clustering cost grows with the number of distinct colors, so large photos can take tens of seconds at full resolution. Defaults to the server's --max-dimension, which is 0 unless configured.",
			"minimum":     0,
			"default":     0,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "palette_extract",
			Description: "Extract the dominant colors of an image and render them as a square grid palette. Returns a status message, the colors as hex/RGB/HSV, and the palette as base64-encoded PNG. Large photos with many distinct colors are slow to cluster; set max_dimension to bound the work.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": paletteProperties(),
			},
		},
		{
			Name:        "palette_download",
			Description: "Render the palette of an image and return only the PNG. Returns available=false without a reason when no palette can be produced.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": paletteProperties(),
			},
		},
		{
			Name:        "image_info",
			Description: "Get the dimensions, format, color depth and number of distinct colors of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file, or an http(s) URL",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
