// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError is returned by a command that has already reported its
// outcome and only needs the process to exit with Code. main checks for
// the ExitCode method and exits silently.
//
// compare uses Code 1 for differing digests, as cmp does.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) ExitCode() int {
	return e.Code
}
