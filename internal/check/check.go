// Package check decides the outcome of a container query against the Docker daemon.
package check

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/zorak1103/check-container/internal/docker"
	apperrors "github.com/zorak1103/check-container/internal/errors"
)

// Query is an immutable, validated check request.
type Query struct {
	Expr     string         // pattern as given on the command line
	Pattern  *regexp.Regexp // compiled Expr, unanchored and case-sensitive
	Endpoint string         // daemon address shown in messages

	// AllowExited is accepted for compatibility but does not influence the
	// outcome: only running containers are listed.
	AllowExited bool
}

// NewQuery compiles expr. An invalid pattern is a configuration error.
func NewQuery(expr, endpoint string, allowExited bool) (*Query, error) {
	if expr == "" {
		return nil, &apperrors.ConfigurationError{
			ConfigPath: "command line",
			Key:        "query-name",
			Err:        errors.New("a container name query is required"),
		}
	}

	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, &apperrors.ConfigurationError{
			ConfigPath: "command line",
			Key:        "query-name",
			Err:        fmt.Errorf("invalid query pattern '%s': %w", expr, err),
		}
	}

	return &Query{
		Expr:        expr,
		Pattern:     pattern,
		Endpoint:    endpoint,
		AllowExited: allowExited,
	}, nil
}

// FlattenNames concatenates the Names of every container record.
func FlattenNames(containers []docker.Container) []string {
	var names []string
	for _, ctr := range containers {
		names = append(names, ctr.Names...)
	}
	return names
}

// MatchAny reports whether pattern matches anywhere inside at least one name.
func MatchAny(pattern *regexp.Regexp, names []string) bool {
	for _, name := range names {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// Classify maps the listing outcome to a Result. names is ignored when err is set.
func Classify(q *Query, names []string, err error) Result {
	switch {
	case err != nil && docker.IsConnectionFailure(err):
		return Result{
			Status:  StatusWarning,
			Message: fmt.Sprintf("Can't connect to Docker on %s: %v", q.Endpoint, err),
		}
	case err != nil && docker.IsAPIError(err):
		return Result{
			Status:  StatusWarning,
			Message: fmt.Sprintf("Docker API on %s returned an error: %v", q.Endpoint, err),
		}
	case err != nil:
		return Result{
			Status:  StatusWarning,
			Message: fmt.Sprintf("Unexpected error querying %s: %v", q.Endpoint, err),
		}
	case MatchAny(q.Pattern, names):
		return Result{
			Status:  StatusOK,
			Message: fmt.Sprintf("Found a container with query %s running on %s.", q.Expr, q.Endpoint),
		}
	default:
		return Result{
			Status:  StatusCritical,
			Message: fmt.Sprintf("Didn't find a container with query %s running on %s.", q.Expr, q.Endpoint),
		}
	}
}

// Checker runs a Query against a daemon client.
type Checker struct {
	client docker.Client
	query  *Query
}

// NewChecker binds q to client.
func NewChecker(client docker.Client, q *Query) *Checker {
	return &Checker{client: client, query: q}
}

// Run issues the single listing request and classifies it.
func (c *Checker) Run(ctx context.Context) Result {
	containers, err := c.client.ListContainers(ctx, docker.FilterOptions{IncludeAll: false})
	if err != nil {
		return Classify(c.query, nil, err)
	}
	return Classify(c.query, FlattenNames(containers), nil)
}
