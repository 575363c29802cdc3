package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cariskill/roadmap/internal/cli"
	rmerrors "github.com/cariskill/roadmap/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	if err == nil {
		return
	}
	report(err)
	os.Exit(exitCode(err))
}

func report(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	if code := rmerrors.GetCode(err); code != "" {
		fmt.Fprintf(os.Stderr, "%s: %s\n", code, rmerrors.UserMessage(err))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

// exitCode is 130 for an interrupt, 2 for rejected input and 1 otherwise.
func exitCode(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return 130
	case rmerrors.GetCode(err).IsInvalid():
		return 2
	}
	return 1
}
