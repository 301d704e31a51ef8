package docker

import (
	"net/http"
	"time"
)

// Container is the part of a /containers/json record the check consumes.
type Container struct {
	ID    string
	Names []string // each conventionally prefixed with "/"
}

// FilterOptions contains options for filtering containers
type FilterOptions struct {
	IncludeAll bool // Include stopped containers (all=true); the check never sets it
}

// Options configures how the client reaches the daemon.
type Options struct {
	Host       string        // endpoint as given by the user, see ParseEndpoint
	APIVersion string        // pins the API version; empty enables negotiation
	Timeout    time.Duration // per-request timeout, zero keeps the SDK default
	TLSCACert  string
	TLSCert    string
	TLSKey     string
	UserAgent  string

	// HTTPClient replaces the transport, used by tests to fake the daemon.
	HTTPClient *http.Client
}
