package clients

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		path     string
		params   url.Values
		opts     []EndpointOption
		expected string
	}{
		{
			name:     "plain path",
			hostname: "https://networker.example.com:9090",
			path:     "global/vmware/vms",
			expected: "https://networker.example.com:9090/nwrestapi/v3/global/vmware/vms",
		},
		{
			name:     "leading and trailing slashes",
			hostname: "https://networker.example.com:9090",
			path:     "//global/vmware/op/refreshvcenters/",
			expected: "https://networker.example.com:9090/nwrestapi/v3/global/vmware/op/refreshvcenters",
		},
		{
			name:     "hostname path is replaced",
			hostname: "https://networker.example.com:9090/some/ui/",
			path:     "/global/protectiongroups/gold",
			expected: "https://networker.example.com:9090/nwrestapi/v3/global/protectiongroups/gold",
		},
		{
			name:     "query parameters",
			hostname: "https://networker.example.com",
			path:     "/global/vmware/vms",
			params:   url.Values{"fl": {"name,uuid"}},
			expected: "https://networker.example.com/nwrestapi/v3/global/vmware/vms?fl=name%2Cuuid",
		},
		{
			name:     "hostname query kept without params",
			hostname: "https://networker.example.com?tenant=a",
			path:     "global",
			expected: "https://networker.example.com/nwrestapi/v3/global?tenant=a",
		},
		{
			name:     "base path and version overrides",
			hostname: "https://networker.example.com",
			path:     "global",
			opts:     []EndpointOption{WithAPIBasePath("/custom/api/"), WithAPIVersion("v2")},
			expected: "https://networker.example.com/custom/api/v2/global",
		},
		{
			name:     "empty overrides keep defaults",
			hostname: "https://networker.example.com",
			path:     "global",
			opts:     []EndpointOption{WithAPIBasePath(""), WithAPIVersion("")},
			expected: "https://networker.example.com/nwrestapi/v3/global",
		},
		{
			name:     "segments are escaped",
			hostname: "https://networker.example.com",
			path:     "global/protectiongroups/Gold Tier",
			expected: "https://networker.example.com/nwrestapi/v3/global/protectiongroups/Gold%20Tier",
		},
		{
			name:     "empty path",
			hostname: "https://networker.example.com",
			path:     "/",
			expected: "https://networker.example.com/nwrestapi/v3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, err := BuildEndpoint(tt.hostname, tt.path, tt.params, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, endpoint)
		})
	}
}

func TestBuildEndpoint_SinglePrefixRegardlessOfSlashes(t *testing.T) {
	hostnames := []string{"https://nw:9090", "https://nw:9090/", "http://10.0.0.1/nwrestapi/v3/"}
	paths := []string{"a/b", "/a/b", "a/b/", "///a/b///"}

	for _, h := range hostnames {
		for _, p := range paths {
			endpoint, err := BuildEndpoint(h, p, nil)
			require.NoError(t, err)

			u, err := url.Parse(endpoint)
			require.NoError(t, err)
			assert.Equal(t, "/nwrestapi/v3/a/b", u.Path, "hostname=%q path=%q", h, p)
			assert.Equal(t, 1, strings.Count(endpoint, "nwrestapi/v3/"))
		}
	}
}

func TestBuildEndpoint_ParamsRoundTrip(t *testing.T) {
	params := url.Values{
		"fl":    {"name,uuid"},
		"q":     {"name:demo 01&x=y"},
		"multi": {"a", "b"},
	}

	endpoint, err := BuildEndpoint("https://nw:9090", "global/vmware/vms", params)
	require.NoError(t, err)

	u, err := url.Parse(endpoint)
	require.NoError(t, err)
	assert.Equal(t, params, u.Query())
}

func TestBuildEndpoint_MalformedHostname(t *testing.T) {
	_, err := BuildEndpoint("https://nw:badport", "global", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing hostname")
}
