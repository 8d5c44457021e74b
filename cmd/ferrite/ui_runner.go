package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ferrite/internal/driver"
	"ferrite/internal/ui"
)

type lintOutcome struct {
	run *driver.Run
	err error
}

// runLintWithUI lints files while a Bubble Tea progress view renders the
// driver events. The diagnostics are printed by the caller once it returns.
func runLintWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Run, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		run, err := driver.LintPaths(ctx, files, optsCopy)
		outcomeCh <- lintOutcome{run: run, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// если UI упал раньше времени, воркеры не должны застрять на полном канале
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.run, uiErr
	}
	return outcome.run, outcome.err
}
