package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tagcheck/internal/driver"
	"tagcheck/internal/ui"
)

type checkOutcome struct {
	run *driver.Run
	err error
}

// runCheckWithUI checks files while a progress view follows the events.
// The view quits when the driver closes the event channel.
func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Run, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		run, err := driver.CheckPaths(ctx, files, opts)
		outcomeCh <- checkOutcome{run: run, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// дочитываем события, если UI вышел раньше драйвера
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil && ctx.Err() == nil {
		return outcome.run, uiErr
	}
	return outcome.run, outcome.err
}
