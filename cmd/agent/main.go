// Command agent is a conversational agent backed by a local Ollama server.
//
// Run without arguments to start the interactive prompt, or pass a command
// to execute a single turn:
//
//	agent
//	agent run what is 12 times 7
//	agent models
//	agent threads list
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Getenv).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			renderError(os.Stderr, err)
		}
		return 1
	}
	return 0
}
