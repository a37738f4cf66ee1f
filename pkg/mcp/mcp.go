package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sts1992/mcp/pkg/api"
	"github.com/sts1992/mcp/pkg/metrics"
	"github.com/sts1992/mcp/pkg/toolsets"
	"github.com/sts1992/mcp/pkg/version"
)

// Options configures a Server
type Options struct {
	Logger  logr.Logger
	Metrics *metrics.Metrics
	// Gatherer backs the /metrics endpoint in HTTP mode
	Gatherer prometheus.Gatherer
	// Instructions is sent to clients during initialization
	Instructions string
}

// Server represents the MCP server
type Server struct {
	server   *mcp.Server
	registry *toolsets.Registry
	log      logr.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

// NewServer creates a new MCP server exposing every tool of registry
func NewServer(info version.Info, registry *toolsets.Registry, opts Options) (*Server, error) {
	s := &Server{
		registry: registry,
		log:      opts.Logger,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
	}
	if s.log.GetSink() == nil {
		s.log = logr.Discard()
	}
	if s.metrics == nil {
		s.metrics = metrics.Noop()
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}

	// Create MCP server
	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    info.BinaryName,
			Version: info.Version,
		},
		&mcp.ServerOptions{
			Instructions: opts.Instructions,
			Capabilities: &mcp.ServerCapabilities{
				Tools: &mcp.ToolCapabilities{},
			},
		},
	)

	// Register all tools
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// ServeStdio starts the MCP server with STDIO transport. Protocol traffic is mirrored to stderr.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.LoggingTransport{
		Transport: &mcp.StdioTransport{},
		Writer:    os.Stderr,
	})
}

// Connect serves a single session over transport, mostly for in-memory tests
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

// Handler returns the HTTP handler serving SSE sessions, /metrics and /healthz
func (s *Server) Handler() http.Handler {
	sse := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
		return s.server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/", sse)
	return mux
}

// ServeHTTP starts the MCP server with HTTP/SSE transport
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("starting MCP server",
		"address", "http://"+addr,
		"sse", "http://"+addr+"/sse",
		"metrics", "http://"+addr+"/metrics",
	)

	// Start HTTP server
	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		s.log.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	}
}

// registerTools registers all tools from the registry
func (s *Server) registerTools() error {
	for _, toolset := range s.registry.All() {
		tools := toolset.GetTools()
		s.log.Info("registering toolset", "toolset", toolset.Name(), "tools", len(tools))

		for _, tool := range tools {
			if tool.Tool.InputSchema == nil {
				return fmt.Errorf("tool %s has no input schema", tool.Tool.Name)
			}
			mcpTool, handler := s.serverToolToMCPTool(tool)
			s.server.AddTool(mcpTool, handler)
		}
	}

	return nil
}

// serverToolToMCPTool converts a ServerTool to MCP SDK format
func (s *Server) serverToolToMCPTool(tool api.ServerTool) (*mcp.Tool, mcp.ToolHandler) {
	mcpTool := &mcp.Tool{
		Name:        tool.Tool.Name,
		Description: tool.Tool.Description,
		InputSchema: tool.Tool.InputSchema,
	}

	mcpHandler := func(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := s.log.WithValues("tool", tool.Tool.Name, "call_id", uuid.NewString())
		start := time.Now()

		result := s.invoke(logr.NewContext(ctx, log), tool, request)

		outcome := "success"
		if result.IsError {
			outcome = "error"
		}
		elapsed := time.Since(start)
		s.metrics.ToolCalls.WithLabelValues(tool.Tool.Name, outcome).Inc()
		s.metrics.ToolDuration.WithLabelValues(tool.Tool.Name).Observe(elapsed.Seconds())
		log.Info("tool call finished", "outcome", outcome, "duration", elapsed)

		return NewTextResult(result), nil
	}

	return mcpTool, mcpHandler
}

// invoke runs the handler. Handler errors and panics become error results so the client always gets text.
func (s *Server) invoke(ctx context.Context, tool api.ServerTool, request *mcp.CallToolRequest) (result *api.ToolCallResult) {
	log := logr.FromContextOrDiscard(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error(fmt.Errorf("%v", r), "tool handler panicked")
			result = api.NewToolCallResult(fmt.Sprintf("Error: internal error in tool %s", tool.Tool.Name), true)
		}
	}()

	toolCallRequest, err := MCPRequestToToolCallRequest(request)
	if err != nil {
		log.Error(err, "invalid tool call request")
		return api.NewToolCallResult(fmt.Sprintf("Error: %v", err), true)
	}

	result, err = tool.Handler(api.ToolHandlerParams{
		Context:         ctx,
		ToolCallRequest: toolCallRequest,
	})
	if err != nil {
		log.Error(err, "tool handler failed")
		return api.NewToolCallResult(fmt.Sprintf("Error: %v", err), true)
	}
	if result == nil {
		return api.NewToolCallResult("Error: tool returned no result", true)
	}
	return result
}

// ToolCallRequest implements api.ToolCallRequest
type ToolCallRequest struct {
	Name      string
	arguments map[string]any
}

var _ api.ToolCallRequest = (*ToolCallRequest)(nil)

// GetArguments returns the tool call arguments
func (t *ToolCallRequest) GetArguments() map[string]any {
	return t.arguments
}

// MCPRequestToToolCallRequest converts MCP request to our internal format. Absent arguments yield an empty map.
func MCPRequestToToolCallRequest(request *mcp.CallToolRequest) (*ToolCallRequest, error) {
	if request == nil || request.Params == nil {
		return nil, errors.New("invalid tool call parameters")
	}
	params := request.Params

	arguments := map[string]any{}
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &arguments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
		}
		if arguments == nil {
			arguments = map[string]any{}
		}
	}

	return &ToolCallRequest{
		Name:      params.Name,
		arguments: arguments,
	}, nil
}

// NewTextResult creates a text result
func NewTextResult(result *api.ToolCallResult) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: result.Content,
			},
		},
		IsError: result.IsError,
	}
}
