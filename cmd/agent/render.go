package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
	"github.com/tailored-agentic-units/ollama-agent/core/response"
	"github.com/tailored-agentic-units/ollama-agent/kernel"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	currentStyle = lipgloss.NewStyle().Bold(true)
)

const rule = "=========================="

func renderBanner(w io.Writer) {
	fmt.Fprintln(w, titleStyle.Render("Ollama Agent"))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

func renderHelp(w io.Writer) {
	fmt.Fprintln(w, "Available commands:")
	fmt.Fprintln(w, `  - Ask math questions: "add 5 and 3", "multiply 10 by 7"`)
	fmt.Fprintln(w, `  - List models: "list models" or "show available models"`)
	fmt.Fprintln(w, `  - Select model: "use llama3.1:8b" or "select mistral:7b"`)
	fmt.Fprintln(w, `  - Help: "help"`)
	fmt.Fprintln(w, `  - Exit: "exit" or "quit"`)
	fmt.Fprintln(w)
}

func renderUnreachable(w io.Writer, endpoint string, err error) {
	fmt.Fprintln(w, errorStyle.Render("Cannot connect to Ollama. Please make sure Ollama is running."))
	fmt.Fprintf(w, "   Expected URL: %s\n", endpoint)
	fmt.Fprintf(w, "   Cause: %v\n", err)
	fmt.Fprintln(w, "   Start Ollama with: ollama serve")
}

// renderTurn prints the decided next step and, when dispatch succeeded, its
// result. A nil turn renders nothing.
func renderTurn(w io.Writer, turn *kernel.Turn) {
	if turn == nil {
		return
	}
	if turn.NextStep != nil {
		fmt.Fprintln(w, mutedStyle.Render("Next step: "+string(turn.NextStep.Tag())))
	}
	if turn.Result != nil {
		renderResult(w, turn.Result)
	}
}

func renderResult(w io.Writer, result response.Result) {
	switch r := result.(type) {
	case response.Calculation:
		fmt.Fprintln(w, successStyle.Render(r.Message))
		fmt.Fprintf(w, "   Operation: %s\n", r.Operation)
		fmt.Fprintf(w, "   Inputs: %s, %s\n", response.FormatNumber(r.Inputs.A), response.FormatNumber(r.Inputs.B))
		fmt.Fprintf(w, "   Result: %s\n", response.FormatNumber(r.Result))
	case response.ModelList:
		renderModelList(w, r)
	case response.ModelSelected:
		fmt.Fprintln(w, successStyle.Render("Model switched successfully!"))
		fmt.Fprintf(w, "   Previous: %s\n", r.PreviousModel)
		fmt.Fprintf(w, "   Current: %s\n", r.NewModel)
	case response.Clarification:
		fmt.Fprintln(w, warnStyle.Render("? "+r.Message))
	case response.FinalResponse:
		fmt.Fprintln(w, successStyle.Render(r.Message))
	default:
		fmt.Fprintln(w, result.Text())
	}
}

func renderModelList(w io.Writer, list response.ModelList) {
	fmt.Fprintln(w, titleStyle.Render("Available Ollama Models:"))
	fmt.Fprintln(w, rule)
	for i, m := range list.Models {
		line := fmt.Sprintf("%d. %s", i+1, m.Display)
		if m.Name == list.CurrentModel {
			line = currentStyle.Render(line + " (current)")
		}
		fmt.Fprintln(w, line)
	}
	if len(list.Models) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No models installed. Pull one with: ollama pull <model>"))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Recommended by Category:"))
	for _, category := range slices.Sorted(maps.Keys(list.Recommendations)) {
		fmt.Fprintf(w, "  %s: %s\n", category, strings.Join(list.Recommendations[category], ", "))
	}
}

func renderError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
}

func renderState(w io.Writer, state protocol.State) {
	fmt.Fprintf(w, "Thread:   %s\n", state.ThreadID)
	fmt.Fprintf(w, "Model:    %s\n", state.CurrentModel)
	fmt.Fprintf(w, "Endpoint: %s\n", state.ServiceEndpoint)
	fmt.Fprintf(w, "Entries:  %d\n", len(state.Context))
	for _, e := range state.Context {
		fmt.Fprintln(w)
		fmt.Fprintln(w, mutedStyle.Render("<"+string(e.Kind)+">"))
		fmt.Fprintln(w, e.Payload)
	}
}
