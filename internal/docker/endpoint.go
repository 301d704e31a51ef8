package docker

import (
	"strings"

	"github.com/docker/docker/client"
)

// Endpoint is a daemon address in the form the Docker SDK understands.
type Endpoint struct {
	Host   string // proto://addr, e.g. unix:///var/run/docker.sock or tcp://127.0.0.1:2376
	Scheme string // http or https for TCP endpoints, empty lets the SDK decide
}

// ParseEndpoint normalises the accepted endpoint spellings: a socket path,
// unix://, tcp://, npipe://, http(s)://host[:port] and bare host:port.
// It never fails; a malformed address surfaces as a connection failure later.
func ParseEndpoint(endpoint string) Endpoint {
	endpoint = strings.TrimSpace(endpoint)

	switch {
	case endpoint == "":
		return Endpoint{Host: client.DefaultDockerHost}
	case strings.HasPrefix(endpoint, "/"):
		return Endpoint{Host: "unix://" + endpoint}
	case strings.HasPrefix(endpoint, "http://"):
		return Endpoint{Host: "tcp://" + trimURL(endpoint, "http://"), Scheme: "http"}
	case strings.HasPrefix(endpoint, "https://"):
		return Endpoint{Host: "tcp://" + trimURL(endpoint, "https://"), Scheme: "https"}
	case strings.Contains(endpoint, "://"):
		return Endpoint{Host: endpoint}
	default:
		return Endpoint{Host: "tcp://" + endpoint}
	}
}

func trimURL(endpoint, prefix string) string {
	return strings.TrimSuffix(strings.TrimPrefix(endpoint, prefix), "/")
}
