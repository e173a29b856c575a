package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kasubs/internal/adapter/amara"
	"kasubs/internal/cli"
	"kasubs/internal/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cli.Execute(ctx, di.InitializeApp, os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	if errors.Is(err, amara.ErrAborted) {
		fmt.Fprintln(os.Stderr, "aborted")
		stop()
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "kasubs: %v\n", err)
	stop()
	os.Exit(1)
}
