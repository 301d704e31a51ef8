package docker

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	apperrors "github.com/zorak1103/check-container/internal/errors"
)

const testAPIVersion = "1.47"

// mockDockerClient implements Client for testing
type mockDockerClient struct {
	containers []Container
	shouldFail bool
	closed     bool
	lastOpts   FilterOptions
}

func (m *mockDockerClient) Close() error {
	m.closed = true
	return nil
}

func (m *mockDockerClient) ListContainers(_ context.Context, opts FilterOptions) ([]Container, error) {
	m.lastOpts = opts
	if m.shouldFail {
		return nil, ErrConnectionFailed
	}
	return m.containers, nil
}

func TestClient_ListContainers(t *testing.T) {
	containers := []Container{
		{ID: "container1", Names: []string{"/web-1"}},
		{ID: "container2", Names: []string{"/db-1", "/web-1/db"}},
	}

	tests := []struct {
		name        string
		containers  []Container
		opts        FilterOptions
		expectCount int
		expectError bool
	}{
		{
			name:        "list running containers",
			containers:  containers,
			opts:        FilterOptions{},
			expectCount: 2,
		},
		{
			name:        "empty list",
			containers:  []Container{},
			opts:        FilterOptions{},
			expectCount: 0,
		},
		{
			name:        "docker error",
			containers:  containers,
			opts:        FilterOptions{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockDockerClient{
				containers: tt.containers,
				shouldFail: tt.expectError,
			}
			client := NewClientWithInterface(mock)

			result, err := client.ListContainers(context.Background(), tt.opts)

			if tt.expectError && err == nil {
				t.Errorf("Expected error but got none")
				return
			}

			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if !tt.expectError && len(result) != tt.expectCount {
				t.Errorf("Expected %d containers, got %d", tt.expectCount, len(result))
			}

			if mock.lastOpts != tt.opts {
				t.Errorf("Expected options %+v to be passed through, got %+v", tt.opts, mock.lastOpts)
			}
		})
	}
}

func TestClient_Close(t *testing.T) {
	mock := &mockDockerClient{}
	client := NewClientWithInterface(mock)

	if err := client.Close(); err != nil {
		t.Errorf("Unexpected error closing client: %v", err)
	}
	if !mock.closed {
		t.Error("Expected Close to reach the wrapped client")
	}
}

// fakeDaemon serves a canned /containers/json answer and records what it saw.
type fakeDaemon struct {
	status int
	body   string

	mu       sync.Mutex
	paths    []string
	allParam []string
}

func (d *fakeDaemon) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	d.paths = append(d.paths, r.URL.Path)
	d.allParam = append(d.allParam, r.URL.Query().Get("all"))
	d.mu.Unlock()

	if strings.HasSuffix(r.URL.Path, "/_ping") {
		w.Header().Set("Api-Version", testAPIVersion)
		_, _ = io.WriteString(w, "OK")
		return
	}
	if !strings.HasSuffix(r.URL.Path, "/containers/json") {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(d.status)
	_, _ = io.WriteString(w, d.body)
}

func newTestClient(t *testing.T, host string) Client {
	t.Helper()
	client, err := NewClient(Options{Host: host, APIVersion: testAPIVersion, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient(%q) unexpected error: %v", host, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewClient_ListContainers_FakeDaemon(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantNames     [][]string
		wantErr       bool
		wantAPIError  bool
		wantConnError bool
	}{
		{
			name:      "running containers",
			status:    http.StatusOK,
			body:      `[{"Id":"abc","Names":["/c92d402a5d14"],"State":"running"},{"Id":"def","Names":["/web","/proxy/web"]}]`,
			wantNames: [][]string{{"/c92d402a5d14"}, {"/web", "/proxy/web"}},
		},
		{
			name:      "no running containers",
			status:    http.StatusOK,
			body:      `[]`,
			wantNames: [][]string{},
		},
		{
			name:      "unknown fields are ignored",
			status:    http.StatusOK,
			body:      `[{"Names":["/only-names"],"SomethingNew":{"nested":true}}]`,
			wantNames: [][]string{{"/only-names"}},
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `[{"Names":`,
			wantErr: true,
		},
		{
			name:    "unexpected structure",
			status:  http.StatusOK,
			body:    `{"Names":["/web"]}`,
			wantErr: true,
		},
		{
			name:         "daemon error status",
			status:       http.StatusInternalServerError,
			body:         `{"message":"daemon is shutting down"}`,
			wantErr:      true,
			wantAPIError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			daemon := &fakeDaemon{status: tt.status, body: tt.body}
			srv := httptest.NewServer(daemon)
			defer srv.Close()

			client := newTestClient(t, srv.URL)
			containers, err := client.ListContainers(context.Background(), FilterOptions{})

			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if got := IsAPIError(err); got != tt.wantAPIError {
					t.Errorf("IsAPIError(%v) = %v, want %v", err, got, tt.wantAPIError)
				}
				if got := IsConnectionFailure(err); got != tt.wantConnError {
					t.Errorf("IsConnectionFailure(%v) = %v, want %v", err, got, tt.wantConnError)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(containers) != len(tt.wantNames) {
				t.Fatalf("Expected %d containers, got %d", len(tt.wantNames), len(containers))
			}
			for i, want := range tt.wantNames {
				if strings.Join(containers[i].Names, ",") != strings.Join(want, ",") {
					t.Errorf("container %d names = %v, want %v", i, containers[i].Names, want)
				}
			}

			daemon.mu.Lock()
			defer daemon.mu.Unlock()
			if len(daemon.paths) != 1 {
				t.Errorf("Expected exactly one request with a pinned API version, got %v", daemon.paths)
			}
			for _, all := range daemon.allParam {
				if all != "" {
					t.Errorf("Expected running containers only, got all=%q", all)
				}
			}
		})
	}
}

func TestNewClient_ListContainers_Unreachable(t *testing.T) {
	srv := httptest.NewServer(&fakeDaemon{status: http.StatusOK, body: `[]`})
	url := srv.URL
	srv.Close()

	client := newTestClient(t, url)
	_, err := client.ListContainers(context.Background(), FilterOptions{})
	if err == nil {
		t.Fatal("Expected error for closed daemon")
	}
	if !IsConnectionFailure(err) {
		t.Errorf("Expected connection failure, got %v", err)
	}

	var connErr *apperrors.DockerConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("Expected *DockerConnectionError, got %T", err)
	}
	if connErr.Operation != "ListContainers" {
		t.Errorf("Operation = %q, want ListContainers", connErr.Operation)
	}
}

func TestNewClient_ListContainers_MissingSocket(t *testing.T) {
	client := newTestClient(t, "unix://"+t.TempDir()+"/missing.sock")

	_, err := client.ListContainers(context.Background(), FilterOptions{})
	if err == nil {
		t.Fatal("Expected error for missing socket")
	}
	if !IsConnectionFailure(err) {
		t.Errorf("Expected connection failure, got %v", err)
	}
}

func TestNewClient_ListContainers_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, err := NewClient(Options{Host: srv.URL, APIVersion: testAPIVersion, Timeout: 100 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewClient unexpected error: %v", err)
	}
	defer func() { _ = client.Close() }()

	_, err = client.ListContainers(context.Background(), FilterOptions{})
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if !IsConnectionFailure(err) {
		t.Errorf("Expected timeout to count as connection failure, got %v", err)
	}
}

// roundTripFunc fakes the daemon transport for endpoints httptest cannot serve.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestNewClient_UnixSocketTransport(t *testing.T) {
	var gotPath, gotUA string
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		gotPath = req.URL.Path
		gotUA = req.Header.Get("User-Agent")
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`[{"Names":["/c92d402a5d14"]}]`)),
			Request:    req,
		}, nil
	})

	client, err := NewClient(Options{
		Host:       "unix:///var/run/docker.sock",
		APIVersion: testAPIVersion,
		UserAgent:  "check-container-by-query/test",
		HTTPClient: &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("NewClient unexpected error: %v", err)
	}
	defer func() { _ = client.Close() }()

	containers, err := client.ListContainers(context.Background(), FilterOptions{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(containers) != 1 || len(containers[0].Names) != 1 || containers[0].Names[0] != "/c92d402a5d14" {
		t.Errorf("Unexpected containers: %+v", containers)
	}
	if want := "/v" + testAPIVersion + "/containers/json"; gotPath != want {
		t.Errorf("request path = %q, want %q", gotPath, want)
	}
	if gotUA != "check-container-by-query/test" {
		t.Errorf("User-Agent = %q, want check-container-by-query/test", gotUA)
	}
}

func TestNewClient_UnixSocketTransportRefused(t *testing.T) {
	transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, &net.OpError{Op: "dial", Net: "unix", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}
	})

	client, err := NewClient(Options{
		Host:       "unix:///var/run/docker.sock",
		APIVersion: testAPIVersion,
		HTTPClient: &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("NewClient unexpected error: %v", err)
	}
	defer func() { _ = client.Close() }()

	_, err = client.ListContainers(context.Background(), FilterOptions{})
	if !IsConnectionFailure(err) {
		t.Errorf("Expected connection failure, got %v", err)
	}
}

func TestIsConnectionFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sentinel", err: ErrConnectionFailed, want: true},
		{name: "typed connection error", err: &apperrors.DockerConnectionError{Operation: "NewClient", Err: errors.New("bad host")}, want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "net error", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, want: true},
		{name: "decode error", err: errors.New("invalid character 'x' looking for beginning of value"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConnectionFailure(tt.err); got != tt.want {
				t.Errorf("IsConnectionFailure(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func BenchmarkClient_ListContainers(b *testing.B) {
	containers := make([]Container, 100)
	for i := range containers {
		containers[i] = Container{ID: "container", Names: []string{"/test-container"}}
	}

	client := NewClientWithInterface(&mockDockerClient{containers: containers})
	ctx := context.Background()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = client.ListContainers(ctx, FilterOptions{})
	}
}
