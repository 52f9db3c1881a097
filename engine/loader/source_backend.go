package loader

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// SourceBackendType identifies where shader source text is fetched from.
type SourceBackendType int

const (
	// BackendTypeFile reads sources from the local filesystem. It serves file:// URLs and bare paths.
	BackendTypeFile SourceBackendType = iota

	// BackendTypeHTTP fetches sources over HTTP(S) with retries.
	BackendTypeHTTP
)

func (t SourceBackendType) String() string {
	switch t {
	case BackendTypeFile:
		return "file"
	case BackendTypeHTTP:
		return "http"
	}
	return "unknown"
}

// sourceBackend fetches the text of one shader source.
type sourceBackend interface {
	// Fetch retrieves the source text at location.
	//
	// Parameters:
	//   - ctx: cancels the fetch
	//   - location: the URL or path of the source
	//
	// Returns:
	//   - string: the source text
	//   - error: error if the source could not be fetched
	Fetch(ctx context.Context, location string) (string, error)
}

// resolveBackendType selects a backend from the location's scheme.
func resolveBackendType(location string) (SourceBackendType, error) {
	u, err := url.Parse(location)
	if err != nil {
		return 0, errors.Wrapf(err, "loader: invalid source location %q", location)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return BackendTypeHTTP, nil
	case "file", "":
		return BackendTypeFile, nil
	}
	// A single letter scheme is a Windows drive path.
	if len(u.Scheme) == 1 {
		return BackendTypeFile, nil
	}
	return 0, errors.Errorf("loader: unsupported source scheme %q", u.Scheme)
}
