package transcript

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Follow watches dir and calls fn with each transcript written there until
// ctx is cancelled. Files that fail to parse are skipped.
func Follow(ctx context.Context, dir string, fn func(*Transcript)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	parser := &JSONParser{}
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Save renames a temp file into place, which shows up as Create.
			if !event.Has(fsnotify.Create) || filepath.Ext(event.Name) != ".json" {
				continue
			}
			data, err := os.ReadFile(event.Name)
			if err != nil {
				continue
			}
			t, err := parser.Parse(data)
			if err != nil {
				continue
			}
			fn(t)

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
