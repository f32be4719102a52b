package network

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/chrisuehlinger/plumbgeom/html"
)

// ErrNotHTML is returned when a fetched fixture is not served as HTML.
var ErrNotHTML = errors.New("fixture is not HTML")

// IsRemote reports whether source names an http or https URL.
func IsRemote(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// LoadFixture reads and parses the fixture at source: a file path, a
// file:// URL or an http(s) URL. A nil client is created on demand for
// remote sources.
func LoadFixture(ctx context.Context, client *Client, source string) (*html.Fixture, error) {
	data, err := read(ctx, client, source)
	if err != nil {
		return nil, err
	}
	fixture, err := html.ParseFixture(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	return fixture, nil
}

func read(ctx context.Context, client *Client, source string) ([]byte, error) {
	if u, err := url.Parse(source); err == nil && u.Scheme == "file" {
		return os.ReadFile(u.Path)
	}
	if !IsRemote(source) {
		return os.ReadFile(source)
	}

	if client == nil {
		var err error
		if client, err = NewClient(); err != nil {
			return nil, err
		}
	}
	resp, err := client.Get(ctx, source)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", source, resp.StatusCode)
	}
	if !IsHTMLContentType(resp.ContentType) {
		return nil, fmt.Errorf("%w: %s served as %s", ErrNotHTML, source, resp.ContentType)
	}
	return resp.Body, nil
}
