package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/interestnet/internal/client/client"
	"github.com/dmitrijs2005/interestnet/internal/client/config"
	"github.com/dmitrijs2005/interestnet/internal/logging"
)

type App struct {
	config *config.Config
	api    client.Client
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	// userName is shown in the prompt after a successful login.
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	api, err := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		api:    api,
		logger: logging.New(logging.FormatText, os.Stderr).With("module", "cli"),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run greets the user, probes the server and blocks in the REPL until exit
// or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to interestnet CLI (type 'help' for commands)")

	if err := a.api.Check(ctx); err != nil {
		a.logger.Warn(ctx, "server check failed", "addr", a.config.ServerEndpointAddr, "error", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.api.Authenticated()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	if a.userName == "" {
		return "(logged in)"
	}
	return "(" + a.userName + ")"
}
