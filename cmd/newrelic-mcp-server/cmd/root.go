package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sts1992/mcp/pkg/api"
	"github.com/sts1992/mcp/pkg/cli"
	"github.com/sts1992/mcp/pkg/newrelic"
	nrtools "github.com/sts1992/mcp/pkg/toolsets/newrelic"
)

var flags cli.Flags

var rootCmd = &cobra.Command{
	Use:   "newrelic-mcp-server",
	Short: "MCP server for NewRelic monitoring data",
	Long: `A Model Context Protocol (MCP) server that gives AI assistants read access
to NewRelic applications, metrics, servers and alert policies.

The API key is read from the NEWRELIC_API_KEY environment variable.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags.Bind(rootCmd)
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func run(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, &flags, cli.Server{
		Name:         "newrelic-mcp-server",
		Instructions: "Use these tools to inspect NewRelic APM applications, their metrics, monitored servers and alert policies.",
		Build:        buildToolsets,
	})
}

func buildToolsets(env cli.Env) ([]api.Toolset, error) {
	loc, err := env.Config.Location()
	if err != nil {
		return nil, err
	}

	client := newrelic.NewClient(env.Config.NewRelic,
		newrelic.WithLogger(env.Log.WithName("newrelic")),
		newrelic.WithMetrics(env.Metrics),
	)
	if !client.Configured() {
		env.Log.Info("NEWRELIC_API_KEY is not set, every tool call will report the missing key")
	}

	return []api.Toolset{
		nrtools.New(client,
			nrtools.WithLogger(env.Log.WithName("toolset")),
			nrtools.WithLocation(loc),
		),
	}, nil
}
