package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ironsheep/chromakey-mcp/internal/server"
)

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Run the MCP (Model Context Protocol) server. Requests are read from stdin,
one JSON-RPC message per line; responses go to stdout. Logs go to stderr.

Configure it in your MCP client as the command "chromakey serve".`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	srv, err := server.New(a.cfg,
		server.WithLogger(a.logger.Named("mcp")),
		server.WithVersion(a.info.Version))
	if err != nil {
		return err
	}

	a.logger.Info("MCP server starting", "version", a.info.Version, "commit", a.info.GitCommit)
	err = srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
