// Package server implements the MCP (Model Context Protocol) server for
// background removal tools.
//
// This package provides a JSON-RPC 2.0 server that exposes chroma-key background
// removal through the MCP protocol, so an assistant that generates character
// assets can turn their flat backgrounds transparent without a GUI.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color (with alpha) at a pixel
//   - image_suggest_key_color: Guess the background color from the border
//
// Background Removal:
//   - image_remove_background: Key out a border-connected background, save PNG
//   - image_remove_background_batch: Same, for many files concurrently
//   - image_preview_transparency: Render over a checkerboard for inspection
//
// # Parameters
//
// Color and tolerance are validated here before reaching the colorkey
// package. Missing values fall back to the loaded configuration
// (white, 30 by default). Tolerance must be 0-100.
//
// # Image Caching
//
// Inspection tools share an in-memory cache of decoded images with a TTL.
// Removal always decodes from disk and evicts the written output from the
// cache.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string (decode and write failures name the path)
package server
