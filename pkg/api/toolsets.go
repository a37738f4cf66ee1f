package api

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/sts1992/mcp/pkg/adapter"
)

// ServerTool represents a tool that can be registered with the MCP server
type ServerTool struct {
	Tool    Tool            // Tool metadata and schema
	Handler ToolHandlerFunc // Function to execute the tool
}

// Tool represents a tool definition
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// Toolset represents a collection of related tools
type Toolset interface {
	// Name returns the toolset name
	Name() string

	// GetTools returns all tools in this toolset
	GetTools() []ServerTool
}

// ToolCallRequest provides access to tool call arguments
type ToolCallRequest interface {
	GetArguments() map[string]any
}

// ToolCallResult represents the result of a tool call. Content is always set, even on failure.
type ToolCallResult struct {
	Content string
	IsError bool
}

// NewToolCallResult creates a new ToolCallResult
func NewToolCallResult(content string, isError bool) *ToolCallResult {
	return &ToolCallResult{
		Content: content,
		IsError: isError,
	}
}

// ToolHandlerFunc is the signature for tool handler functions
type ToolHandlerFunc func(params ToolHandlerParams) (*ToolCallResult, error)

// ToolHandlerParams contains all parameters passed to a tool handler
type ToolHandlerParams struct {
	context.Context
	ToolCallRequest ToolCallRequest
}

func (p ToolHandlerParams) arguments() map[string]any {
	if p.ToolCallRequest == nil {
		return nil
	}
	return p.ToolCallRequest.GetArguments()
}

// GetString returns a string argument value with default
func (p ToolHandlerParams) GetString(key, defaultValue string) string {
	args := p.arguments()
	if val, ok := args[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return defaultValue
}

// GetBool returns a boolean argument value with default
func (p ToolHandlerParams) GetBool(key string, defaultValue bool) bool {
	args := p.arguments()
	if val, ok := args[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return defaultValue
}

// GetInt returns an int argument value with default. Numeric strings are accepted.
func (p ToolHandlerParams) GetInt(key string, defaultValue int) int {
	args := p.arguments()
	if val, ok := args[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return defaultValue
}

// Int returns an integer argument, or defaultValue when it is absent.
// Values that are not integers, as numbers or numeric strings, yield an *adapter.InvalidArgumentError.
func (p ToolHandlerParams) Int(key string, defaultValue int) (int, error) {
	args := p.arguments()
	val, ok := args[key]
	if !ok || val == nil {
		return defaultValue, nil
	}
	invalid := &adapter.InvalidArgumentError{Param: key, Reason: "must be an integer"}
	switch v := val.(type) {
	case int:
		return v, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, invalid
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, invalid
		}
		return n, nil
	default:
		return 0, invalid
	}
}

// Lookup returns the argument rendered as a string, and whether it was present.
// Integral numbers render without a fractional part so they can be used as path parameters.
func (p ToolHandlerParams) Lookup(key string) (string, bool) {
	args := p.arguments()
	val, ok := args[key]
	if !ok || val == nil {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
