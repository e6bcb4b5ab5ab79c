package clients

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultAPIBasePath is the path prefix of the Networker REST API.
	DefaultAPIBasePath = "nwrestapi"

	// DefaultAPIVersion is the Networker REST API version used by this client.
	DefaultAPIVersion = "v3"
)

// endpointOptions holds per-call overrides for BuildEndpoint.
type endpointOptions struct {
	basePath string
	version  string
}

// EndpointOption overrides a BuildEndpoint default.
type EndpointOption func(*endpointOptions)

// WithAPIBasePath overrides the API base path. An empty value keeps the default.
func WithAPIBasePath(basePath string) EndpointOption {
	return func(o *endpointOptions) {
		if basePath != "" {
			o.basePath = basePath
		}
	}
}

// WithAPIVersion overrides the API version. An empty value keeps the default.
func WithAPIVersion(version string) EndpointOption {
	return func(o *endpointOptions) {
		if version != "" {
			o.version = version
		}
	}
}

// BuildEndpoint composes a request URL from the hostname and a resource path.
//
// The hostname's path is replaced by /{base path}/{version}/{path}. Leading and
// trailing slashes of the base path and resource path are stripped, so
// "global/vms" and "/global/vms/" produce the same URL. Segments are
// percent-escaped when the URL is serialised. The hostname's query is replaced
// by params when params is non-empty.
func BuildEndpoint(hostname, path string, params url.Values, opts ...EndpointOption) (string, error) {
	o := endpointOptions{
		basePath: DefaultAPIBasePath,
		version:  DefaultAPIVersion,
	}
	for _, opt := range opts {
		opt(&o)
	}

	u, err := url.Parse(hostname)
	if err != nil {
		return "", fmt.Errorf("parsing hostname: %w", err)
	}

	segments := make([]string, 0, 3)
	for _, s := range []string{o.basePath, o.version, path} {
		if s = strings.Trim(s, "/"); s != "" {
			segments = append(segments, s)
		}
	}

	u.Path = "/" + strings.Join(segments, "/")
	u.RawPath = ""

	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	return u.String(), nil
}
