// Package server implements the MCP (Model Context Protocol) server for image hole filling.
//
// This package provides a JSON-RPC 2.0 server that exposes the fill engine
// through the MCP protocol, so that an MCP client can remove a region from an
// image and get the reconstructed grayscale result back.
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
// Hole Filling:
//   - image_fill_box: Fill the pixels strictly inside a rectangle
//   - image_fill_mask: Fill the pixels marked by a mask image
//   - image_hole_analysis: Report hole and boundary sizes without filling
//
// Options a call leaves unset (exponent, epsilon, connectivity, gray mode,
// mask threshold) default to the server's configuration.
//
// # Image Caching
//
// Source images and masks are cached by path for the lifetime of the server.
// A fill that writes to output_path evicts that path so later loads see the
// new file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
