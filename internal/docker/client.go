// Package docker provides a client for querying the Docker daemon API.
package docker

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	apperrors "github.com/zorak1103/check-container/internal/errors"
)

// Common errors
var (
	ErrConnectionFailed = errors.New("docker connection failed")
)

// Client defines the interface for Docker client operations.
// All methods accept context.Context for cancellation and timeout support.
type Client interface {
	// Close closes the Docker client connection and releases resources.
	Close() error

	// ListContainers issues GET /containers/json and returns the decoded records.
	//
	// Example usage:
	//   containers, err := client.ListContainers(ctx, FilterOptions{})
	//   if err != nil {
	//       return fmt.Errorf("failed to list containers: %w", err)
	//   }
	//   for _, ctr := range containers {
	//       fmt.Printf("  %s: %v\n", ctr.ID, ctr.Names)
	//   }
	ListContainers(ctx context.Context, opts FilterOptions) ([]Container, error)
}

// dockerClientWrapper wraps the Docker client to implement our interface
type dockerClientWrapper struct {
	cli  *client.Client
	host string
}

// Compile-time verification that dockerClientWrapper implements Client
var _ Client = (*dockerClientWrapper)(nil)

// NewClient connects to the Docker daemon described by opts. Construction
// failures, such as an unparsable host, are reported as connection errors.
func NewClient(opts Options) (Client, error) {
	endpoint := ParseEndpoint(opts.Host)

	// WithHost must precede WithHTTPClient, it configures the default transport.
	clientOpts := []client.Opt{
		client.WithHost(endpoint.Host),
	}
	if endpoint.Scheme != "" {
		clientOpts = append(clientOpts, client.WithScheme(endpoint.Scheme))
	}
	if opts.TLSCACert != "" || opts.TLSCert != "" || opts.TLSKey != "" {
		clientOpts = append(clientOpts, client.WithTLSClientConfig(opts.TLSCACert, opts.TLSCert, opts.TLSKey))
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(opts.HTTPClient))
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, client.WithTimeout(opts.Timeout))
	}
	if opts.APIVersion != "" {
		clientOpts = append(clientOpts, client.WithVersion(opts.APIVersion))
	} else {
		clientOpts = append(clientOpts, client.WithAPIVersionNegotiation())
	}
	if opts.UserAgent != "" {
		clientOpts = append(clientOpts, client.WithUserAgent(opts.UserAgent))
	}

	cli, err := client.NewClientWithOpts(clientOpts...)
	if err != nil {
		return nil, &apperrors.DockerConnectionError{
			Host:      opts.Host,
			Operation: "NewClient",
			Err:       fmt.Errorf("failed to create Docker client for %s: %w", endpoint.Host, err),
		}
	}

	wrapper := &dockerClientWrapper{
		cli:  cli,
		host: endpoint.Host,
	}
	return &dockerClient{cli: wrapper}, nil
}

// NewClientWithInterface is used for testing with mock implementations.
func NewClientWithInterface(dockerCli Client) Client {
	return &dockerClient{cli: dockerCli}
}

func (w *dockerClientWrapper) Close() error {
	return w.cli.Close()
}

func (w *dockerClientWrapper) ListContainers(ctx context.Context, opts FilterOptions) ([]Container, error) {
	listOptions := container.ListOptions{
		All: opts.IncludeAll,
	}

	containers, err := w.cli.ContainerList(ctx, listOptions)
	if err != nil {
		if IsConnectionFailure(err) {
			return nil, &apperrors.DockerConnectionError{Host: w.host, Operation: "ListContainers", Err: err}
		}
		return nil, fmt.Errorf("failed to list containers from %s: %w", w.host, err)
	}

	result := make([]Container, 0, len(containers))
	for _, ctr := range containers {
		result = append(result, Container{
			ID:    ctr.ID,
			Names: ctr.Names,
		})
	}

	return result, nil
}

// IsConnectionFailure reports whether err means the daemon could not be
// reached at all: refused or missing socket, timeout, TLS handshake failure.
func IsConnectionFailure(err error) bool {
	if err == nil {
		return false
	}

	var connErr *apperrors.DockerConnectionError
	if errors.As(err, &connErr) || errors.Is(err, ErrConnectionFailed) {
		return true
	}
	if client.IsErrConnectionFailed(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Transport errors surface as *url.Error, which implements net.Error.
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsAPIError reports whether the daemon answered with a non-2xx status.
func IsAPIError(err error) bool {
	if err == nil || IsConnectionFailure(err) {
		return false
	}
	return errdefs.IsInvalidArgument(err) ||
		errdefs.IsUnauthorized(err) ||
		errdefs.IsPermissionDenied(err) ||
		errdefs.IsNotFound(err) ||
		errdefs.IsConflict(err) ||
		errdefs.IsFailedPrecondition(err) ||
		errdefs.IsInternal(err) ||
		errdefs.IsNotImplemented(err) ||
		errdefs.IsUnavailable(err) ||
		errdefs.IsUnknown(err)
}

// dockerClient wraps the Docker client with application-specific logic
type dockerClient struct {
	cli Client
}

func (c *dockerClient) Close() error {
	return c.cli.Close()
}

func (c *dockerClient) ListContainers(ctx context.Context, opts FilterOptions) ([]Container, error) {
	return c.cli.ListContainers(ctx, opts)
}
