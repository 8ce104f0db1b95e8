package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "startup target", args: []string{"cmd", "-a", "127.0.0.1:9090", "-n", "bob", "-w", "10"},
			expected: &Config{ServerEndpointAddr: "127.0.0.1:9090", Username: "bob", RequestTimeout: 10 * time.Second}},
		{name: "url target with token", args: []string{"cmd", "-target", "url", "-url", "file:///tmp/c.json", "-k", "tok", "-s", "k"},
			expected: &Config{Target: "url", URL: "file:///tmp/c.json", AccessToken: "tok", SecretKey: "k"}},
		{name: "unknown flags are ignored", args: []string{"cmd", "-z", "1", "-a", "h:1"},
			expected: &Config{ServerEndpointAddr: "h:1"}},
		{name: "incorrect timeout", args: []string{"cmd", "-w", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
