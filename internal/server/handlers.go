package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/chromakey-mcp/internal/colorkey"
	"github.com/ironsheep/chromakey-mcp/internal/config"
	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// DefaultPreviewSize bounds preview images when the caller gives no max_size.
const DefaultPreviewSize = 512

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_remove_background").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool finished", "tool", params.Name, "cached_images", s.cache.Len())

	return resultResponse(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": mustMarshalJSON(result)},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_suggest_key_color":
		return s.handleImageSuggestKeyColor(args)

	// Background Removal
	case "image_remove_background":
		return s.handleImageRemoveBackground(ctx, args)
	case "image_remove_background_batch":
		return s.handleImageRemoveBackgroundBatch(ctx, args)
	case "image_preview_transparency":
		return s.handleImagePreviewTransparency(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse builds a JSON-RPC error. Empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: jsonRPCVersion, ID: id, Error: e}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// keyParams resolves the optional color and tolerance arguments against the
// configured defaults and validates them.
func (s *Server) keyParams(color string, tolerance *int) (imaging.RGBColor, int, error) {
	if color == "" {
		color = s.cfg.DefaultColor
	}
	target, err := imaging.ParseColor(color, s.palette)
	if err != nil {
		return imaging.RGBColor{}, 0, err
	}

	t := s.cfg.DefaultTolerance
	if tolerance != nil {
		t = *tolerance
	}
	if err := config.ValidateTolerance(t); err != nil {
		return imaging.RGBColor{}, 0, err
	}
	return target, t, nil
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

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSuggestKeyColorArgs struct {
	Path string `json:"path"`
	Top  int    `json:"top"`
}

func (s *Server) handleImageSuggestKeyColor(args json.RawMessage) (interface{}, error) {
	var a imageSuggestKeyColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Top == 0 {
		a.Top = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SuggestKeyColor(img, s.palette, a.Top)
}

// === Background Removal Handlers ===

type imageRemoveBackgroundArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	Color      string `json:"color"`
	Tolerance  *int   `json:"tolerance"`
	Trim       bool   `json:"trim"`
}

func (s *Server) handleImageRemoveBackground(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRemoveBackgroundArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	target, tolerance, err := s.keyParams(a.Color, a.Tolerance)
	if err != nil {
		return nil, err
	}

	res, err := s.processor.Process(ctx, colorkey.Job{
		Source:    a.Path,
		Output:    a.OutputPath,
		Target:    target,
		Tolerance: tolerance,
		Trim:      a.Trim,
	})
	if err != nil {
		return nil, err
	}
	// A previous result at the same path may be cached.
	s.cache.Evict(res.Output)
	return res, nil
}

type imageRemoveBackgroundBatchArgs struct {
	Paths     []string `json:"paths"`
	Color     string   `json:"color"`
	Tolerance *int     `json:"tolerance"`
	Trim      bool     `json:"trim"`
}

// BatchResultItem is one file's outcome in a batch response.
type BatchResultItem struct {
	Source string               `json:"source"`
	Result *colorkey.FileResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// BatchResult is the response of image_remove_background_batch.
type BatchResult struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Items     []BatchResultItem `json:"items"`
}

func (s *Server) handleImageRemoveBackgroundBatch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRemoveBackgroundBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths must not be empty")
	}
	target, tolerance, err := s.keyParams(a.Color, a.Tolerance)
	if err != nil {
		return nil, err
	}

	sources, err := imaging.ExpandImagePaths(a.Paths, s.processor.Suffix())
	if err != nil {
		return nil, err
	}

	jobs := make([]colorkey.Job, len(sources))
	for i, src := range sources {
		jobs[i] = colorkey.Job{Source: src, Target: target, Tolerance: tolerance, Trim: a.Trim}
	}

	items, err := s.processor.ProcessBatch(ctx, jobs, s.cfg.Workers)
	if err != nil {
		return nil, err
	}

	out := &BatchResult{Items: make([]BatchResultItem, len(items))}
	for i, it := range items {
		out.Items[i] = BatchResultItem{Source: it.Job.Source, Result: it.Result}
		if it.Err != nil {
			out.Items[i].Error = it.Err.Error()
			out.Failed++
			continue
		}
		s.cache.Evict(it.Result.Output)
		out.Succeeded++
	}
	return out, nil
}

type imagePreviewTransparencyArgs struct {
	Path       string `json:"path"`
	Background string `json:"background"`
	MaxSize    *int   `json:"max_size"`
}

func (s *Server) handleImagePreviewTransparency(args json.RawMessage) (interface{}, error) {
	var a imagePreviewTransparencyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	bg, err := imaging.ParseBackground(a.Background, s.palette)
	if err != nil {
		return nil, err
	}
	maxSize := DefaultPreviewSize
	if a.MaxSize != nil {
		maxSize = *a.MaxSize
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(img, bg, maxSize)
}
