// Package main is the entry point for the check-container-by-query check.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/zorak1103/check-container/cmd"
	"github.com/zorak1103/check-container/internal/check"
	"github.com/zorak1103/check-container/internal/reporting"
)

func main() {
	// A panic still has to produce a status line; monitoring treats it as UNKNOWN.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nStack trace:\n%s\n", debug.Stack())
			result := check.Result{Status: check.StatusUnknown, Message: fmt.Sprintf("panic: %v", r)}
			os.Exit(reporting.Emit(os.Stdout, reporting.DefaultCheckName, result))
		}
	}()

	cmd.Execute()
}
