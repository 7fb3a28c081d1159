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

// fillOptionProperties returns the optional properties shared by the fill tools.
func fillOptionProperties() map[string]interface{} {
	return map[string]interface{}{
		"exponent": map[string]interface{}{
			"type":        "number",
			"description": "Distance exponent z in weight = 1/(d^z + epsilon). Larger values favour nearby boundary pixels. Default from config (2)",
		},
		"epsilon": map[string]interface{}{
			"type":        "number",
			"description": "Small positive epsilon in the weight denominator. Default from config (1e-9)",
		},
		"connectivity": map[string]interface{}{
			"type":        "integer",
			"enum":        []int{4, 8},
			"description": "Pixel connectivity used to find the hole boundary. Other values fall back to 4",
		},
		"gray_mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"bt601", "luma", "lab"},
			"description": "How color pixels are reduced to gray. Default from config (bt601)",
		},
		"output_path": map[string]interface{}{
			"type":        "string",
			"description": "Optional path to save the filled image. Format follows the extension (.png, .jpg, .gif, .tif, .bmp)",
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional scale factor for the returned preview. Default 1.0",
			"default":     1.0,
		},
		"include_image": map[string]interface{}{
			"type":        "boolean",
			"description": "Return the filled image as base64 PNG. Default true",
			"default":     true,
		},
	}
}

func boxProperties() map[string]interface{} {
	return map[string]interface{}{
		"x1": map[string]interface{}{
			"type":        "integer",
			"description": "Left edge X of the box. Pixels on this edge are kept",
		},
		"y1": map[string]interface{}{
			"type":        "integer",
			"description": "Top edge Y of the box. Pixels on this edge are kept",
		},
		"x2": map[string]interface{}{
			"type":        "integer",
			"description": "Right edge X of the box. Pixels on this edge are kept",
		},
		"y2": map[string]interface{}{
			"type":        "integer",
			"description": "Bottom edge Y of the box. Pixels on this edge are kept",
		},
	}
}

func maskProperties() map[string]interface{} {
	return map[string]interface{}{
		"mask_path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a mask image of the same size. Bright pixels mark the hole",
		},
		"threshold": map[string]interface{}{
			"type":        "number",
			"description": "Mask luminance (0-1) at or above which a pixel is a hole. Default from config (0.5)",
		},
	}
}

func merge(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and pixel count.",
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

		// Hole Filling
		{
			Name:        "image_fill_box",
			Description: "Remove the pixels strictly inside a rectangle and reconstruct them as a distance-weighted average of the surrounding pixels. Returns a grayscale image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					map[string]interface{}{"path": pathProperty()},
					boxProperties(),
					fillOptionProperties(),
				),
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_fill_mask",
			Description: "Remove the pixels marked by a mask image and reconstruct them from the hole boundary. Holes touching the image border are left unfilled. Returns a grayscale image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					map[string]interface{}{"path": pathProperty()},
					maskProperties(),
					fillOptionProperties(),
				),
				"required": []string{"path", "mask_path"},
			},
		},
		{
			Name:        "image_hole_analysis",
			Description: "Report how many pixels a box or mask would remove and how many boundary pixels would feed the fill, without filling. Useful to estimate cost, which grows with holes x boundary.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					map[string]interface{}{"path": pathProperty()},
					boxProperties(),
					maskProperties(),
					map[string]interface{}{
						"connectivity": fillOptionProperties()["connectivity"],
						"gray_mode":    fillOptionProperties()["gray_mode"],
					},
				),
				"required": []string{"path"},
			},
		},
	}
}
