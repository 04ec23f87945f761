package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeString(t *testing.T) {
	testCases := []struct {
		eventType EventType
		expected  string
	}{
		{EventTypeCreated, "created"},
		{EventTypeModified, "modified"},
		{EventTypeDeleted, "deleted"},
		{EventTypeRenamed, "renamed"},
		{EventType(99), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.eventType.String())
		})
	}
}

func TestNewFileWatcher(t *testing.T) {
	watcher, err := NewFileWatcher(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	assert.NotNil(t, watcher.watcher)
	assert.NotNil(t, watcher.debouncer)
	assert.Empty(t, watcher.filters)
	assert.Empty(t, watcher.handlers)
}

func TestDebouncerGroupsEvents(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.start(ctx)

	d.submit(ChangeEvent{Path: "/b.yml", Type: EventTypeCreated})
	d.submit(ChangeEvent{Path: "/a.yml", Type: EventTypeModified})
	d.submit(ChangeEvent{Path: "/b.yml", Type: EventTypeModified})

	select {
	case batch := <-d.Output():
		require.Len(t, batch, 2)
		assert.Equal(t, "/a.yml", batch[0].Path)
		assert.Equal(t, "/b.yml", batch[1].Path)
		assert.Equal(t, EventTypeModified, batch[1].Type, "last event per path wins")
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer did not flush")
	}

	select {
	case batch := <-d.Output():
		t.Fatalf("unexpected second batch: %v", batch)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestPathFilter(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "build.yml")
	filter := PathFilter(target)

	assert.True(t, filter(target))
	assert.True(t, filter(filepath.Join(dir, ".", "build.yml")))
	assert.False(t, filter(filepath.Join(dir, "out", "app.flags")))
}

func TestWatchFileReportsOnlyThatFile(t *testing.T) {
	dir := t.TempDir()
	desc := filepath.Join(dir, "build.yml")
	require.NoError(t, os.WriteFile(desc, []byte("targets: {}\n"), 0o644))

	watcher, err := NewFileWatcher(50*time.Millisecond, nil)
	require.NoError(t, err)
	defer watcher.Stop()
	require.NoError(t, watcher.WatchFile(desc))

	batches := make(chan []ChangeEvent, 10)
	watcher.AddHandler(func(events []ChangeEvent) error {
		batches <- events
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))

	// Sibling writes are filtered out.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.flags"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(desc, []byte("targets: {a: {}}\n"), 0o644))

	select {
	case events := <-batches:
		require.NotEmpty(t, events)
		for _, e := range events {
			abs, err := filepath.Abs(e.Path)
			require.NoError(t, err)
			assert.Equal(t, desc, abs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
