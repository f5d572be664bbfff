// Package main is the entry point for the ecbuild CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RPDevJesco/EventChains-BuildSystem/cmd/ecbuild/commands"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/app"
	_ "github.com/RPDevJesco/EventChains-BuildSystem/internal/wiring" //nolint:depguard // registration-only import
	"github.com/grindlemire/graft"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application, _, err := graft.ExecuteFor[*app.App](ctx)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "ecbuild: %+v\n", err)
		return 1
	}

	cli := commands.New(application)
	if err := cli.Execute(ctx); err != nil {
		// zerr prints a pretty error report with stack trace and metadata
		// when using %+v; exit codes follow spec.md §6: 0 success, 1 any
		// failure.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
