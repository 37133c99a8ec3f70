// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command ionhash computes Ion hashes of structured data files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/ionhash/cmd/ionhash/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that report their own outcome (like compare) return
		// an error with an exit code. Don't print a redundant "error:"
		// line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root(commands.StandardStreams()).Execute(ctx, os.Args[1:])
}
