// Package cli runs one delete-config exchange against a netconfd server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/netconfd/internal/auth"
	"github.com/dmitrijs2005/netconfd/internal/client/client"
	"github.com/dmitrijs2005/netconfd/internal/client/config"
)

type netconfClient interface {
	OpenSession(ctx context.Context) error
	SessionID() string
	DeleteConfig(ctx context.Context, target string, url string) error
	CloseSession(ctx context.Context) error
	Close() error
}

// closeSessionTimeout bounds the close-session call, which still runs after
// the request deadline has passed or the caller has given up.
const closeSessionTimeout = 5 * time.Second

var newClient = func(addr, token string) (netconfClient, error) {
	return client.NewNetconfClientService(addr, token)
}

type App struct {
	config *config.Config
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	if c.Target != "startup" && c.Target != "url" {
		return nil, fmt.Errorf("unknown target %q", c.Target)
	}
	if c.Target == "url" && c.URL == "" {
		return nil, errors.New("url target needs -url")
	}
	return &App{config: c, out: os.Stdout}, nil
}

func (a *App) accessToken() (string, error) {
	if a.config.AccessToken != "" {
		return a.config.AccessToken, nil
	}
	secret := []byte(a.config.SecretKey)
	if len(secret) == 0 {
		var err error
		if secret, err = GetSecret(a.out); err != nil {
			return "", err
		}
	}
	return auth.GenerateToken(a.config.Username, secret, a.config.TokenValidity)
}

// Run opens a session, issues delete-config and closes the session again.
// The close is attempted even when delete-config fails or times out.
func (a *App) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	token, err := a.accessToken()
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	c, err := newClient(a.config.ServerEndpointAddr, token)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer c.Close()

	if err := c.OpenSession(ctx); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	fmt.Fprintf(a.out, "session %s opened\n", c.SessionID())

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeSessionTimeout)
		defer cancel()
		if cerr := c.CloseSession(closeCtx); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close session: %w", cerr))
		}
	}()

	url := ""
	if a.config.Target == "url" {
		url = a.config.URL
	}
	if err := c.DeleteConfig(ctx, a.config.Target, url); err != nil {
		fmt.Fprintf(a.out, "<rpc-error> %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "<ok/>")
	return nil
}
