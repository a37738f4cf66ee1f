package toolsets

import (
	"fmt"

	"github.com/sts1992/mcp/pkg/api"
)

// Registry holds the toolsets served by one binary
type Registry struct {
	toolsets []api.Toolset
	names    map[string]bool
}

// NewRegistry creates a registry holding toolsets
func NewRegistry(toolsets ...api.Toolset) (*Registry, error) {
	r := &Registry{names: map[string]bool{}}
	for _, ts := range toolsets {
		if err := r.Register(ts); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register registers a toolset. Tool names must be unique across toolsets.
func (r *Registry) Register(toolset api.Toolset) error {
	for _, tool := range toolset.GetTools() {
		if r.names[tool.Tool.Name] {
			return fmt.Errorf("duplicate tool %q in toolset %s", tool.Tool.Name, toolset.Name())
		}
		r.names[tool.Tool.Name] = true
	}
	r.toolsets = append(r.toolsets, toolset)
	return nil
}

// All returns all registered toolsets
func (r *Registry) All() []api.Toolset {
	return r.toolsets
}

// ToolCount returns the number of tools across all toolsets
func (r *Registry) ToolCount() int {
	return len(r.names)
}
