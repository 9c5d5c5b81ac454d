package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gi8lino/jiramcp/internal/config"
	"github.com/gi8lino/jiramcp/internal/flag"
	"github.com/gi8lino/jiramcp/internal/jira"
	"github.com/gi8lino/jiramcp/internal/logging"
	"github.com/gi8lino/jiramcp/internal/server"
	"github.com/gi8lino/jiramcp/internal/utils"

	"github.com/containeroo/tinyflags"
)

// Run wires up the application and serves MCP over stdio until ctx is done.
func Run(ctx context.Context, version, commit string, args []string, w io.Writer, getEnv func(string) string) error {
	// Create a new context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Parse command-line flags
	flags, err := flag.ParseArgs(version, args, w, getEnv)
	if err != nil {
		if tinyflags.IsHelpRequested(err) || tinyflags.IsVersionRequested(err) {
			fmt.Fprint(w, err.Error()) // nolint:errcheck
			return nil
		}
		return fmt.Errorf("parsing error: %w", err)
	}

	// Setup logger. Logs go to stderr; stdout belongs to the MCP transport.
	logger := logging.SetupLogger(flags.LogFormat, flags.Debug, w)

	logger.Info("Starting jiramcp",
		"version", version,
		"commit", commit,
	)

	// Load settings
	settings, err := config.LoadConfig(flags.Config)
	if err != nil {
		return fmt.Errorf("loading config error: %w", err)
	}
	if err := config.ValidateConfig(&settings); err != nil {
		return fmt.Errorf("validating config error: %w", err)
	}

	// Setup jira client
	auth, method, err := jira.ResolveAuth(flags.JiraBearerToken, flags.JiraEmail, flags.JiraToken)
	if err != nil {
		return err
	}
	c := jira.NewClient(flags.JiraAPIURL, auth, flags.SkipTLSVerify, flags.Timeout)

	logger.Debug("jira auth",
		"method", method,
		"header", utils.ObfuscateHeader(utils.GetAuthorizationHeader(auth)),
	)

	// Setup MCP server and serve on stdio until the context is cancelled
	s := server.New(c, flags.JiraBaseURL, settings, logger, version)
	err = server.Serve(ctx, s, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("MCP server exited with error", "error", err)
		return err
	}

	return nil
}
