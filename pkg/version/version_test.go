package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	info := For("newrelic-mcp-server")
	assert.Equal(t, "newrelic-mcp-server", info.BinaryName)
	assert.Equal(t, "newrelic-mcp-server dev (commit: unknown, built: unknown)", info.String())
}
