package filex

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/netconfd/internal/netx"
)

// ReadLimited reads the regular file at path, refusing files larger than
// limit bytes.
func ReadLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	if fi.Size() > limit {
		return nil, netx.ErrTooLarge
	}
	return netx.ReadLimited(f, limit)
}
