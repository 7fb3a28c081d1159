package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ironsheep/image-fill-mcp/internal/fill"
	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_fill_box").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errIncompleteBox is returned when only some of x1, y1, x2, y2 are given.
var errIncompleteBox = errors.New("box needs all of x1, y1, x2, y2")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return fail(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Printf("Tool %s failed: %v", params.Name, err)
		return fail(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return reply(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": mustMarshalJSON(result)},
		},
	})
}

// executeTool runs the named tool. Handlers fill unset options from the
// server config.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Hole Filling
	case "image_fill_box":
		return s.handleImageFillBox(args)
	case "image_fill_mask":
		return s.handleImageFillMask(args)
	case "image_hole_analysis":
		return s.handleImageHoleAnalysis(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Hole Filling Handlers ===

// fillOptionArgs holds the optional settings shared by the fill tools.
// Pointers distinguish "unset" from an explicit zero.
type fillOptionArgs struct {
	Exponent     *float64 `json:"exponent"`
	Epsilon      *float64 `json:"epsilon"`
	Connectivity int      `json:"connectivity"`
	GrayMode     string   `json:"gray_mode"`
	OutputPath   string   `json:"output_path"`
	Scale        float64  `json:"scale"`
	IncludeImage *bool    `json:"include_image"`
}

type maskArgs struct {
	MaskPath  string  `json:"mask_path"`
	Threshold float64 `json:"threshold"`
}

type imageFillBoxArgs struct {
	Path string `json:"path"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
	fillOptionArgs
}

type imageFillMaskArgs struct {
	Path string `json:"path"`
	maskArgs
	fillOptionArgs
}

type imageHoleAnalysisArgs struct {
	Path         string `json:"path"`
	X1           *int   `json:"x1"`
	Y1           *int   `json:"y1"`
	X2           *int   `json:"x2"`
	Y2           *int   `json:"y2"`
	Connectivity int    `json:"connectivity"`
	GrayMode     string `json:"gray_mode"`
	maskArgs
}

// request builds an imaging.FillRequest from the call's options, filling
// unset values from the server configuration.
func (s *Server) request(o fillOptionArgs) (imaging.FillRequest, error) {
	weigher := s.cfg.Weigher()
	if o.Exponent != nil {
		weigher.Exponent = *o.Exponent
	}
	if o.Epsilon != nil {
		weigher.Epsilon = *o.Epsilon
	}
	if weigher.Exponent < 0 || weigher.Epsilon < 0 {
		return imaging.FillRequest{}, fmt.Errorf("exponent and epsilon must be non-negative")
	}

	conn := o.Connectivity
	if conn == 0 {
		conn = s.cfg.Fill.Connectivity
	}

	modeName := o.GrayMode
	if modeName == "" {
		modeName = s.cfg.Image.GrayMode
	}
	mode, err := imaging.ParseGrayMode(modeName)
	if err != nil {
		return imaging.FillRequest{}, err
	}

	if o.Scale == 0 {
		o.Scale = 1.0
	}

	return imaging.FillRequest{
		Weigher:       weigher,
		Connectivity:  fill.ParseConnectivity(conn),
		GrayMode:      mode,
		Workers:       s.cfg.Fill.Workers,
		MaskThreshold: s.cfg.Image.MaskThreshold,
		OutputPath:    o.OutputPath,
		Scale:         o.Scale,
		OmitPreview:   o.IncludeImage != nil && !*o.IncludeImage,
	}, nil
}

// applyMask loads the mask into req. It is a no-op when no mask path is given.
func (s *Server) applyMask(req *imaging.FillRequest, m maskArgs) error {
	if m.MaskPath == "" {
		return nil
	}
	mask, err := s.cache.Load(m.MaskPath)
	if err != nil {
		return fmt.Errorf("failed to load mask: %w", err)
	}
	req.Mask = mask
	if m.Threshold > 0 {
		req.MaskThreshold = m.Threshold
	}
	return nil
}

func (s *Server) runFill(path string, req imaging.FillRequest) (interface{}, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	result, err := imaging.FillImage(img, req)
	if err != nil {
		return nil, err
	}
	if req.OutputPath != "" {
		s.cache.Evict(req.OutputPath)
	}
	if s.cfg.Debug() {
		log.Printf("filled %s: %d holes, %d boundary, %d unfilled",
			path, result.Holes, result.Boundary, result.UnfilledPixels)
	}
	return result, nil
}

func (s *Server) handleImageFillBox(args json.RawMessage) (interface{}, error) {
	var a imageFillBoxArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	req, err := s.request(a.fillOptionArgs)
	if err != nil {
		return nil, err
	}
	box := fill.NewBox(a.X1, a.Y1, a.X2, a.Y2)
	req.Box = &box
	return s.runFill(a.Path, req)
}

func (s *Server) handleImageFillMask(args json.RawMessage) (interface{}, error) {
	var a imageFillMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaskPath == "" {
		return nil, fmt.Errorf("mask_path is required")
	}
	req, err := s.request(a.fillOptionArgs)
	if err != nil {
		return nil, err
	}
	if err := s.applyMask(&req, a.maskArgs); err != nil {
		return nil, err
	}
	return s.runFill(a.Path, req)
}

func (s *Server) handleImageHoleAnalysis(args json.RawMessage) (interface{}, error) {
	var a imageHoleAnalysisArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	req, err := s.request(fillOptionArgs{Connectivity: a.Connectivity, GrayMode: a.GrayMode})
	if err != nil {
		return nil, err
	}

	switch set := countSet(a.X1, a.Y1, a.X2, a.Y2); set {
	case 0:
	case 4:
		box := fill.NewBox(*a.X1, *a.Y1, *a.X2, *a.Y2)
		req.Box = &box
	default:
		return nil, errIncompleteBox
	}
	if err := s.applyMask(&req, a.maskArgs); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.AnalyzeHole(img, req)
}

func countSet(vals ...*int) int {
	n := 0
	for _, v := range vals {
		if v != nil {
			n++
		}
	}
	return n
}
