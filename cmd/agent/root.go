package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
	"github.com/tailored-agentic-units/ollama-agent/kernel"
	"github.com/tailored-agentic-units/ollama-agent/store"
	"github.com/tailored-agentic-units/ollama-agent/threads"
)

// errReported marks a failure already explained on stdout.
var errReported = errors.New("reported")

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg     *kernel.Config
	manager *threads.Manager
	opts    []kernel.Option
	events  *os.File
}

// newRootCmd builds the command tree. kernelOpts are applied to every kernel
// the commands create.
func newRootCmd(getenv func(string) string, kernelOpts ...kernel.Option) *cobra.Command {
	opts := &options{}
	a := &app{opts: kernelOpts}
	var threadID string

	root := &cobra.Command{
		Use:   "agent",
		Short: "Conversational agent backed by a local Ollama server",
		Long: `agent turns free-text requests into structured intents (arithmetic,
model listing, model selection, clarification, final answer), executes them,
and keeps a bounded context of the conversation.

Run without arguments to start the interactive prompt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(newLogger(opts.verbose))

			cfg, err := loadConfig(opts, getenv)
			if err != nil {
				return err
			}
			if opts.eventsFile != "" {
				if a.events, err = openEventLog(opts.eventsFile); err != nil {
					return err
				}
			}
			a.cfg = cfg
			a.manager = threads.NewManager(cfg, store.NewStore(&cfg.Store), a.opts...)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.events != nil {
				return a.events.Close()
			}
			return nil
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.interactive(cmd, threadID)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "path to a JSON or YAML config file")
	flags.StringVar(&opts.endpoint, "endpoint", "", "Ollama base URL (overrides "+envEndpoint+")")
	flags.StringVar(&opts.model, "model", "", "model for new threads (overrides "+envModel+")")
	flags.StringVar(&opts.storePath, "store", "", "directory for thread snapshots (default: in memory)")
	flags.StringVar(&opts.eventsFile, "events", "", "append kernel events as JSON lines to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging to stderr")
	root.Flags().StringVar(&threadID, "thread", "", "resume a stored thread")

	root.AddCommand(
		newRunCmd(a),
		newModelsCmd(a),
		newThreadsCmd(a),
	)
	return root
}

func (a *app) interactive(cmd *cobra.Command, threadID string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	renderBanner(out)
	if err := a.health(ctx); err != nil {
		renderUnreachable(out, a.cfg.Endpoint, err)
		return errReported
	}
	fmt.Fprintln(out, successStyle.Render("Connected to Ollama successfully!"))

	var state protocol.State
	var err error
	if threadID != "" {
		state, err = a.manager.Get(ctx, threadID)
	} else {
		state, err = a.manager.Create(ctx, "")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Current model: %s\n", state.CurrentModel)
	fmt.Fprintln(out, mutedStyle.Render("Thread: "+state.ThreadID))
	fmt.Fprintln(out)
	renderHelp(out)

	in := cmd.InOrStdin()
	prompt := false
	if f, ok := in.(*os.File); ok {
		prompt = term.IsTerminal(int(f.Fd()))
	}

	r := &repl{
		manager:  a.manager,
		threadID: state.ThreadID,
		in:       in,
		out:      out,
		prompt:   prompt,
	}
	return r.run(ctx)
}

func (a *app) health(ctx context.Context) error {
	k, err := kernel.New(a.cfg, a.opts...)
	if err != nil {
		return err
	}
	return k.Health(ctx)
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <command...>",
		Short: "Execute a single command on a throwaway thread",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if err := a.health(ctx); err != nil {
				renderUnreachable(out, a.cfg.Endpoint, err)
				return errReported
			}

			command := strings.Join(args, " ")
			fmt.Fprintf(out, "Processing command: %q\n", command)

			turn, err := a.manager.Execute(ctx, command, "")
			renderTurn(out, turn)
			return err
		},
	}
}

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models installed on the Ollama server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kernel.New(a.cfg, a.opts...)
			if err != nil {
				return err
			}

			result, err := k.Dispatch(cmd.Context(), protocol.ListModels{})
			if err != nil {
				return err
			}
			renderResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newThreadsCmd(a *app) *cobra.Command {
	threadsCmd := &cobra.Command{
		Use:   "threads",
		Short: "Manage stored conversation threads",
		Long: `List, inspect, and delete conversation threads.

Threads persist across runs only when --store (or store.path in the config
file) names a directory.`,
	}

	threadsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored threads",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				summaries, err := a.manager.List(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(summaries) == 0 {
					fmt.Fprintln(out, "No stored threads.")
					return nil
				}
				for _, s := range summaries {
					fmt.Fprintf(out, "%s  %-24s %d entries\n", s.ThreadID, s.Model, s.ContextLength)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <thread-id>",
			Short: "Show a thread's model and context",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				state, err := a.manager.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				renderState(cmd.OutOrStdout(), state)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <thread-id>",
			Short: "Delete a stored thread",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.manager.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted thread %s\n", args[0])
				return nil
			},
		},
	)
	return threadsCmd
}

