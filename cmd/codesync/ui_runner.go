package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/nilehmann/codesync/internal/scan"
	"github.com/nilehmann/codesync/internal/source"
	"github.com/nilehmann/codesync/internal/ui"
)

// collectWithUI runs the tree scan behind a progress view. The walk runs
// in its own goroutine feeding the UI through a channel sink; the UI owns
// the terminal until the scan finishes.
func collectWithUI(title string, fs *source.FileSet, root string, opts scan.CollectOptions) (*scan.Matches, error) {
	events := make(chan scan.Event, 256)
	opts.Progress = scan.ChannelSink{Ch: events}

	var matches *scan.Matches
	var g errgroup.Group
	g.Go(func() error {
		defer close(events)
		ms, err := scan.Collect(fs, root, opts)
		matches = ms
		return err
	})

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// The view is gone; keep draining so the walk can finish.
		go func() {
			for range events {
			}
		}()
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if uiErr != nil {
		return nil, uiErr
	}
	return matches, nil
}
