// Package reporting renders check results in the monitoring-plugin format.
package reporting

import (
	"fmt"
	"io"

	"github.com/zorak1103/check-container/internal/check"
	"github.com/zorak1103/check-container/internal/sanitize"
)

// DefaultCheckName prefixes every status line unless overridden.
const DefaultCheckName = "CheckDockerContainerByQuery"

// FormatLine renders "<CheckName> <OUTCOME>: <message>" on one line.
func FormatLine(checkName string, result check.Result) string {
	if checkName == "" {
		checkName = DefaultCheckName
	}
	return fmt.Sprintf("%s %s: %s", checkName, result.Status, sanitize.Line(result.Message))
}

// Emit writes the status line to w and returns the exit code for result.
func Emit(w io.Writer, checkName string, result check.Result) int {
	// Nothing useful can be done if stdout is gone; the exit code still reports.
	_, _ = fmt.Fprintln(w, FormatLine(checkName, result))
	return result.Status.ExitCode()
}
