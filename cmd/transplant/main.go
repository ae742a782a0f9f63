package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/sokinpui/transplant/cli"
	"github.com/sokinpui/transplant/internal/tui"
	"github.com/sokinpui/transplant/internal/ui"
	"github.com/sokinpui/transplant/model"
	"github.com/sokinpui/transplant/transplant"
)

func main() {
	cfg, err := cli.ParseFlags()
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app, err := transplant.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	var summary model.Summary
	// The TUI owns the terminal; payloads piped on stdin and dry-run diffs
	// need the plain path.
	plain := cfg.NoAnimation || cfg.DryRun || cfg.PayloadFile == "" && isPiped()
	if plain {
		summary, err = app.Execute()
		if len(summary.Outcomes) > 0 {
			ui.PrintStageSummary(summary.Path, summary.Outcomes)
		}
	} else {
		// Status lines would tear the TUI; it renders the stage summary itself.
		ui.SetOutput(io.Discard)
		m := tui.New(app)
		if _, runErr := tea.NewProgram(m, tea.WithOutput(os.Stderr)).Run(); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
			os.Exit(1)
		}
		ui.SetOutput(os.Stderr)
		summary, err = m.Result()
		if errors.Is(err, tui.ErrAborted) {
			m.Wait()
			ui.Warning("Aborted: %s may already have been written.", cfg.Target)
			os.Exit(1)
		}
	}

	if err != nil {
		// The TUI has already rendered the error and any stack trace.
		if plain {
			var detailed *transplant.DetailedError
			if errors.As(err, &detailed) {
				fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
			}
			ui.Error("Error: %v", err)
		}
		os.Exit(1)
	}

	if cfg.DryRun {
		fmt.Print(summary.Diff)
		if summary.Message != "" {
			ui.Info("%s", summary.Message)
		}
		return
	}
	fmt.Printf("%s successfully transformed.\n", cfg.Target)
}

func isPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
