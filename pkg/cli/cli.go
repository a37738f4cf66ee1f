// Package cli holds the startup sequence shared by the server binaries.
package cli

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/sts1992/mcp/pkg/api"
	"github.com/sts1992/mcp/pkg/config"
	"github.com/sts1992/mcp/pkg/logging"
	"github.com/sts1992/mcp/pkg/mcp"
	"github.com/sts1992/mcp/pkg/metrics"
	"github.com/sts1992/mcp/pkg/toolsets"
	"github.com/sts1992/mcp/pkg/version"
)

// Flags are the command line options common to every server
type Flags struct {
	ConfigPath  string
	ShowVersion bool
	HTTPMode    bool
	HTTPAddr    string
	LogLevel    string
}

// Bind registers the flags on cmd
func (f *Flags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ConfigPath, "config", "", "Path to a YAML configuration file")
	cmd.Flags().BoolVar(&f.ShowVersion, "version", false, "Show version information")
	cmd.Flags().BoolVar(&f.HTTPMode, "http", false, "Run in HTTP/SSE mode instead of STDIO")
	cmd.Flags().StringVar(&f.HTTPAddr, "http-addr", config.DefaultHTTPAddr, "HTTP server address (only used with --http)")
	cmd.Flags().StringVar(&f.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// Apply overrides cfg with the flags that were set explicitly
func (f *Flags) Apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("http-addr") {
		cfg.HTTPAddr = f.HTTPAddr
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
}

// Env is what a server needs to build its toolsets
type Env struct {
	Config  *config.Config
	Log     logr.Logger
	Metrics *metrics.Metrics
}

// Server describes one binary
type Server struct {
	Name         string
	Instructions string
	// Build creates the toolsets served by the binary
	Build func(env Env) ([]api.Toolset, error)
}

// Run loads the configuration, builds the toolsets and serves them until the command context is done
func Run(cmd *cobra.Command, flags *Flags, srv Server) error {
	info := version.For(srv.Name)

	// Show version if requested
	if flags.ShowVersion {
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
		return nil
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	flags.Apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, sync, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer sync()
	log = log.WithName(srv.Name)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(srv.Name, reg)

	sets, err := srv.Build(Env{Config: cfg, Log: log, Metrics: m})
	if err != nil {
		return fmt.Errorf("failed to create toolsets: %w", err)
	}

	registry, err := toolsets.NewRegistry(sets...)
	if err != nil {
		return err
	}
	if registry.ToolCount() == 0 {
		return fmt.Errorf("no tools registered")
	}

	server, err := mcp.NewServer(info, registry, mcp.Options{
		Logger:       log,
		Metrics:      m,
		Gatherer:     reg,
		Instructions: srv.Instructions,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Start server with appropriate transport
	ctx := cmd.Context()

	if flags.HTTPMode {
		log.Info("starting server in HTTP/SSE mode", "version", info.Version, "tools", registry.ToolCount())
		if err := server.ServeHTTP(ctx, cfg.HTTPAddr); err != nil {
			return fmt.Errorf("failed to start MCP server: %w", err)
		}
		return nil
	}

	log.Info("starting server in STDIO mode", "version", info.Version, "tools", registry.ToolCount())
	if err := server.ServeStdio(ctx); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	return nil
}
