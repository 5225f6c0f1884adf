// Package mcptools exposes the knowledge-point catalog as MCP tools so an
// analysis agent can canonicalize the tags it produces.
//
// Each tool is a struct with its dependencies injected via the constructor,
// a Definition() returning the mcp.Tool schema, and a Handle() method.
package mcptools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument; JSON numbers arrive as float64.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// listArg accepts a comma-separated string or a JSON array of strings.
func listArg(req mcp.CallToolRequest, key string) []string {
	out := []string{}
	switch v := req.GetArguments()[key].(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case []string:
		for _, s := range v {
			out = append(out, strings.TrimSpace(s))
		}
	case string:
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
