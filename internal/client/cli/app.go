package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/bioauth/internal/api"
	"github.com/dmitrijs2005/bioauth/internal/client/client"
	"github.com/dmitrijs2005/bioauth/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	user   *api.User
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewAuthClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run starts the REPL and blocks until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	printlnFn("Welcome to bioauth CLI (type 'help' for commands)")

	pingCtx, cancel := a.withTimeout(ctx)
	if err := a.client.Ping(pingCtx); err != nil {
		printlnFn("Warning: server not reachable at", a.config.ServerEndpointAddr)
	}
	cancel()

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.client != nil && a.client.Token() != ""
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() || a.user == nil {
		return ""
	}
	return "(" + a.user.Email + ") "
}

// withTimeout bounds a single RPC by the configured request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) writer() io.Writer {
	if a.out == nil {
		return io.Discard
	}
	return a.out
}
