package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gi8lino/jiramcp/internal/app"
)

// Version and Commit are set at build time via ldflags.
var (
	Version string = "dev"
	Commit  string = "none"
)

func main() {
	ctx := context.Background()
	if err := app.Run(ctx, Version, Commit, os.Args[1:], os.Stderr, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err) // nolint:errcheck
		os.Exit(1)
	}
}
