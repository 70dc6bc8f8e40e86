// Package cli implements the interactive command loop of the ItemVault
// client: account commands (register, login) and item commands (list, add,
// show, update, delete) executed against the backend over HTTP.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/itemvault/internal/client/client"
	"github.com/dmitrijs2005/itemvault/internal/client/config"
)

// vaultAPI is the slice of the HTTP client used by the command loop.
type vaultAPI interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	LoggedIn() bool
	Logout()
	CreateItem(ctx context.Context, name string, description *string) (*client.Item, error)
	ListItems(ctx context.Context) ([]client.Item, error)
	GetItem(ctx context.Context, id string) (*client.Item, error)
	UpdateItem(ctx context.Context, id, name string, description *string) (*client.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

type App struct {
	config *config.Config
	api    vaultAPI
	reader *bufio.Reader
	out    io.Writer

	userName string
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    client.New(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) getStatus() string {
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	return ""
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to ItemVault CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "ivault %s> ", a.getStatus())

		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if cmd == "exit" || cmd == "quit" {
			return
		}
		a.dispatch(ctx, cmd, args)
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "help":
		if a.api.LoggedIn() {
			fmt.Fprintln(a.out, "Available commands: (l)ist, add, show <id>, update <id>, delete <id>, logout, exit")
		} else {
			fmt.Fprintln(a.out, "Available commands: register, login, exit")
		}

	case "register":
		a.Register(ctx)

	case "login":
		a.Login(ctx)

	case "logout":
		a.api.Logout()
		a.userName = ""

	case "list", "l":
		a.List(ctx)

	case "add":
		a.Add(ctx)

	case "show":
		if len(args) != 1 {
			fmt.Fprintln(a.out, "usage: show <id>")
			return
		}
		a.Show(ctx, args[0])

	case "update":
		if len(args) != 1 {
			fmt.Fprintln(a.out, "usage: update <id>")
			return
		}
		a.Update(ctx, args[0])

	case "delete":
		if len(args) != 1 {
			fmt.Fprintln(a.out, "usage: delete <id>")
			return
		}
		a.Delete(ctx, args[0])

	default:
		fmt.Fprintf(a.out, "unknown command %q, type 'help'\n", cmd)
	}
}
