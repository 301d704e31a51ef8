package check

import (
	"fmt"
	"strings"
)

// Status is the monitoring-plugin outcome vocabulary. The numeric value is
// the process exit code.
type Status int

const (
	StatusOK       Status = 0
	StatusWarning  Status = 1
	StatusCritical Status = 2
	StatusUnknown  Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the plugin exit code for s.
func (s Status) ExitCode() int {
	if s < StatusOK || s > StatusUnknown {
		return int(StatusUnknown)
	}
	return int(s)
}

// ParseStatus accepts the outcome names case-insensitively.
func ParseStatus(name string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "OK":
		return StatusOK, nil
	case "WARNING", "WARN":
		return StatusWarning, nil
	case "CRITICAL", "CRIT":
		return StatusCritical, nil
	case "UNKNOWN":
		return StatusUnknown, nil
	}
	return StatusUnknown, fmt.Errorf("unknown status %q (expected ok, warning, critical or unknown)", name)
}

// Result is the single outcome produced by one run.
type Result struct {
	Status  Status
	Message string
}
