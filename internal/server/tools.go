package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func colorProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Background color to remove: a named color (white, black, green, blue, or one defined in the config file) or hex such as #00FF00. Defaults to the configured default color.",
	}
}

func toleranceProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"maximum":     100,
		"description": "Color tolerance 0-100. A pixel matches when |dR|+|dG|+|dB| <= tolerance*3. Defaults to the configured tolerance (30).",
	}
}

func trimProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Crop the result to its visible (non-transparent) content. Default false.",
		"default":     false,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it has an alpha channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate, including alpha.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_suggest_key_color",
			Description: "Inspect the image border and suggest which background color to remove, with the nearest named color and the smallest tolerance that matches it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"top": map[string]interface{}{
						"type":        "integer",
						"description": "Number of most frequent border colors to list (default 5)",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},

		// Background Removal
		{
			Name:        "image_remove_background",
			Description: "Make a flat-colored background transparent and save the result as PNG. Only background connected to the image border is removed; same-colored areas enclosed by the subject are kept. Color data is preserved; only alpha changes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Destination PNG path. Defaults to <source-stem>_transparent.png next to the source.",
					},
					"color":     colorProperty(),
					"tolerance": toleranceProperty(),
					"trim":      trimProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_remove_background_batch",
			Description: "Remove the background from several images concurrently. Each output is written next to its source as <stem>_transparent.png. Failures are reported per file and do not stop the others.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths of image files or directories (directories are scanned non-recursively)",
					},
					"color":     colorProperty(),
					"tolerance": toleranceProperty(),
					"trim":      trimProperty(),
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "image_preview_transparency",
			Description: "Render an image over a checkerboard (or a solid color) so transparent areas are visible, returned as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"background": map[string]interface{}{
						"type":        "string",
						"description": "\"checker\" (default), a named color, or hex color",
						"default":     "checker",
					},
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Shrink the preview so neither side exceeds this many pixels (default 512, 0 keeps full size)",
						"default":     512,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return resultResponse(req.ID, map[string]interface{}{"tools": GetToolDefinitions()})
}
