package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/netconfd/internal/auth"
	"github.com/dmitrijs2005/netconfd/internal/client/client"
	"github.com/dmitrijs2005/netconfd/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	calls    []string
	closeCtx context.Context
	blockDC  bool
	token    string
	target   string
	url      string
	openErr  error
	dcErr    error
	closeErr error
	closed   bool
}

func (f *fakeClient) OpenSession(context.Context) error {
	f.calls = append(f.calls, "open")
	return f.openErr
}

func (f *fakeClient) SessionID() string { return "sess-1" }

func (f *fakeClient) DeleteConfig(ctx context.Context, target, url string) error {
	f.calls = append(f.calls, "delete-config")
	f.target, f.url = target, url
	if f.blockDC {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.dcErr
}

func (f *fakeClient) CloseSession(ctx context.Context) error {
	f.calls = append(f.calls, "close")
	f.closeCtx = ctx
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.closeErr
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func withFakeClient(t *testing.T, fc *fakeClient) {
	t.Helper()
	orig := newClient
	newClient = func(_, token string) (netconfClient, error) {
		fc.token = token
		return fc, nil
	}
	t.Cleanup(func() { newClient = orig })
}

func newTestApp(t *testing.T, mutate func(*config.Config)) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	if mutate != nil {
		mutate(cfg)
	}
	app, err := NewApp(cfg)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	app.out = out
	return app, out
}

func TestNewApp_Validation(t *testing.T) {
	_, err := NewApp(&config.Config{Target: "running"})
	require.Error(t, err)

	_, err = NewApp(&config.Config{Target: "url"})
	require.Error(t, err)

	_, err = NewApp(&config.Config{Target: "url", URL: "file:///x"})
	require.NoError(t, err)
}

func TestRun_StartupMintsToken(t *testing.T) {
	fc := &fakeClient{}
	withFakeClient(t, fc)
	app, out := newTestApp(t, nil)

	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, []string{"open", "delete-config", "close"}, fc.calls)
	assert.Equal(t, "startup", fc.target)
	assert.Empty(t, fc.url)
	assert.True(t, fc.closed)
	assert.Contains(t, out.String(), "<ok/>")

	user, err := auth.GetUsernameFromToken(fc.token, []byte("secretKey"))
	require.NoError(t, err)
	assert.Equal(t, "admin", user)
}

func TestRun_URLWithGivenToken(t *testing.T) {
	fc := &fakeClient{}
	withFakeClient(t, fc)
	app, _ := newTestApp(t, func(c *config.Config) {
		c.AccessToken = "preissued"
		c.Target = "url"
		c.URL = "s3://cfg/startup.json"
		c.RequestTimeout = time.Second
	})

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, "preissued", fc.token)
	assert.Equal(t, "url", fc.target)
	assert.Equal(t, "s3://cfg/startup.json", fc.url)
}

func TestRun_DeleteConfigErrorStillCloses(t *testing.T) {
	reply := &client.ReplyError{Kind: "CommitError", Tag: "operation-failed", Message: "commit failed"}
	fc := &fakeClient{dcErr: reply}
	withFakeClient(t, fc)
	app, out := newTestApp(t, nil)

	err := app.Run(context.Background())
	require.ErrorIs(t, err, reply)
	assert.Equal(t, []string{"open", "delete-config", "close"}, fc.calls)
	assert.Contains(t, out.String(), "<rpc-error>")
}

func TestRun_ClosesSessionAfterTimeout(t *testing.T) {
	fc := &fakeClient{blockDC: true}
	withFakeClient(t, fc)
	app, _ := newTestApp(t, func(c *config.Config) { c.RequestTimeout = 50 * time.Millisecond })

	err := app.Run(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotContains(t, err.Error(), "close session")

	assert.Equal(t, []string{"open", "delete-config", "close"}, fc.calls)
	require.NotNil(t, fc.closeCtx)
	assert.NoError(t, fc.closeCtx.Err())
	_, hasDeadline := fc.closeCtx.Deadline()
	assert.True(t, hasDeadline)
}

func TestRun_ClosesSessionAfterCancel(t *testing.T) {
	fc := &fakeClient{blockDC: true}
	withFakeClient(t, fc)
	app, _ := newTestApp(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	require.ErrorIs(t, app.Run(ctx), context.Canceled)
	require.NotNil(t, fc.closeCtx)
	assert.NoError(t, fc.closeCtx.Err())
}

func TestRun_CloseErrorIsJoined(t *testing.T) {
	closeErr := errors.New("gone")
	fc := &fakeClient{closeErr: closeErr}
	withFakeClient(t, fc)
	app, _ := newTestApp(t, nil)

	require.ErrorIs(t, app.Run(context.Background()), closeErr)
}

func TestRun_OpenError(t *testing.T) {
	fc := &fakeClient{openErr: client.ErrUnauthorized}
	withFakeClient(t, fc)
	app, _ := newTestApp(t, nil)

	require.ErrorIs(t, app.Run(context.Background()), client.ErrUnauthorized)
	assert.Equal(t, []string{"open"}, fc.calls)
	assert.True(t, fc.closed)
}

func TestRun_PromptsForSecret(t *testing.T) {
	fc := &fakeClient{}
	withFakeClient(t, fc)
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("typed"), nil }
	t.Cleanup(func() { readPassword = orig })

	app, out := newTestApp(t, func(c *config.Config) { c.SecretKey = "" })

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Enter secret key")

	user, err := auth.GetUsernameFromToken(fc.token, []byte("typed"))
	require.NoError(t, err)
	assert.Equal(t, "admin", user)
}

func TestRun_PromptError(t *testing.T) {
	fc := &fakeClient{}
	withFakeClient(t, fc)
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	t.Cleanup(func() { readPassword = orig })

	app, _ := newTestApp(t, func(c *config.Config) { c.SecretKey = "" })

	require.Error(t, app.Run(context.Background()))
	assert.Empty(t, fc.calls)
}

func TestRun_ConnectError(t *testing.T) {
	orig := newClient
	newClient = func(string, string) (netconfClient, error) { return nil, errors.New("bad target") }
	t.Cleanup(func() { newClient = orig })

	app, _ := newTestApp(t, nil)
	require.Error(t, app.Run(context.Background()))
}
