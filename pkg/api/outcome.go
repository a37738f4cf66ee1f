package api

import "github.com/sts1992/mcp/pkg/adapter"

// NewOutcomeResult formats an outcome into the tool result. Failures are flagged but still carry text.
func NewOutcomeResult[T any](o adapter.Outcome[T], view adapter.View[T]) *ToolCallResult {
	return NewToolCallResult(adapter.Format(o, view), o.IsError())
}
