// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/certtrust/src/cli"
	"github.com/H0llyW00dzZ/certtrust/src/logger"
	verpkg "github.com/H0llyW00dzZ/certtrust/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

// exitCode maps a CLI result to the process exit status. A signature that
// does not verify exits with 2 so scripts can tell it apart from failures.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrInvalidSignature):
		return 2
	default:
		return 1
	}
}

func main() {
	log := logger.NewCLILogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	select {
	case err := <-done:
		if err != nil {
			os.Exit(exitCode(err))
		}
	case <-ctx.Done():
		log.Println("Operation cancelled by signal. Exiting...")
		// serve and mcp shut down gracefully on cancellation; give them a moment.
		select {
		case <-done:
		case <-time.After(5 * time.Second):
		}
		if !cli.OperationPerformedSuccessfully {
			os.Exit(130) // Standard exit code for SIGINT
		}
	}
}
