package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/netconfd/internal/netx"
	"github.com/stretchr/testify/require"
)

func TestReadLimited_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	b, err := ReadLimited(path, 1024)
	require.NoError(t, err)
	require.Equal(t, `{}`, string(b))
}

func TestReadLimited_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.json")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o600))

	_, err := ReadLimited(path, 10)
	require.ErrorIs(t, err, netx.ErrTooLarge)
}

func TestReadLimited_Missing(t *testing.T) {
	_, err := ReadLimited(filepath.Join(t.TempDir(), "absent"), 10)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadLimited_Directory(t *testing.T) {
	_, err := ReadLimited(t.TempDir(), 10)
	require.Error(t, err)
}
