package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tailored-agentic-units/ollama-agent/threads"
)

// repl reads one line per turn and runs it on a single thread.
type repl struct {
	manager  *threads.Manager
	threadID string
	in       io.Reader
	out      io.Writer
	prompt   bool
}

func (r *repl) run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)

	for {
		if r.prompt {
			fmt.Fprint(r.out, "You: ")
		}
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		case "help":
			renderHelp(r.out)
			continue
		}

		reply, err := r.manager.Continue(ctx, r.threadID, input)
		if reply != nil {
			renderTurn(r.out, reply.Turn)
		}
		if err != nil {
			renderError(r.out, err)
		}
		fmt.Fprintln(r.out)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return scanner.Err()
}
