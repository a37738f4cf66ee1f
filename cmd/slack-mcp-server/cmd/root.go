package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sts1992/mcp/pkg/api"
	"github.com/sts1992/mcp/pkg/cli"
	"github.com/sts1992/mcp/pkg/slackapi"
	slacktools "github.com/sts1992/mcp/pkg/toolsets/slack"
)

var flags cli.Flags

var rootCmd = &cobra.Command{
	Use:   "slack-mcp-server",
	Short: "MCP server for Slack messaging",
	Long: `A Model Context Protocol (MCP) server that lets AI assistants send messages,
list channels, read channel history, look up users and search messages in Slack.

The bot token is read from the SLACK_BOT_TOKEN environment variable.`,
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
		Name:         "slack-mcp-server",
		Instructions: "Use these tools to post and read Slack messages. Channel history timestamps are rendered in the server's configured timezone.",
		Build:        buildToolsets,
	})
}

func buildToolsets(env cli.Env) ([]api.Toolset, error) {
	loc, err := env.Config.Location()
	if err != nil {
		return nil, err
	}

	client := slackapi.NewClient(env.Config.Slack,
		slackapi.WithLogger(env.Log.WithName("slack")),
		slackapi.WithMetrics(env.Metrics),
	)
	if !client.Configured() {
		env.Log.Info("SLACK_BOT_TOKEN is not set, every tool call will report the missing token")
	}

	return []api.Toolset{
		slacktools.New(client,
			slacktools.WithLogger(env.Log.WithName("toolset")),
			slacktools.WithLocation(loc),
		),
	}, nil
}
