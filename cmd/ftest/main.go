package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"ftest/internal/cli/commands"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := commands.NewRootCommand(version, os.Stdout, os.Stderr)

	// Execute root command
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, commands.ErrTestsFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(1)
}
