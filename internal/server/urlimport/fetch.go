// Package urlimport fetches configuration documents named by a URL locator
// and validates them strictly against the loaded schema modules.
package urlimport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/netconfd/internal/filex"
	"github.com/dmitrijs2005/netconfd/internal/netx"
)

// MaxDocumentSize bounds fetched documents.
const MaxDocumentSize = 16 << 20

var ErrUnsupportedScheme = errors.New("unsupported url scheme")

// S3Options configures access to the S3-compatible object store used for
// s3://bucket/key locators.
type S3Options struct {
	RootUser     string
	RootPassword string
	Region       string
	BaseEndpoint string
}

// Fetcher retrieves raw documents for file://, http(s):// and s3:// locators.
type Fetcher struct {
	http *http.Client
	s3   S3Options
}

func NewFetcher(client *http.Client, s3 S3Options) *Fetcher {
	return &Fetcher{http: client, s3: s3}
}

// Fetch returns the document at locator.
func (f *Fetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return nil, fmt.Errorf("parse locator: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		if u.Host != "" && u.Host != "localhost" {
			return nil, fmt.Errorf("%w: remote file host %q", ErrUnsupportedScheme, u.Host)
		}
		return filex.ReadLimited(u.Path, MaxDocumentSize)
	case "http", "https":
		return netx.Download(ctx, f.http, locator, MaxDocumentSize)
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("s3 locator needs bucket and key: %q", locator)
		}
		return f.fetchS3(ctx, u.Host, key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}
