package watch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu    sync.Mutex
	files map[string]string
	order []string
}

func (c *collector) fn(name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.files == nil {
		c.files = make(map[string]string)
	}
	c.files[filepath.Base(name)] = string(data)
	c.order = append(c.order, filepath.Base(name))
	return nil
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

func TestSource_DeliversBacklogThenNewFiles(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "a.jsonl")
	require.NoError(t, os.WriteFile(old, []byte("old\n"), 0600))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ndjson"), []byte("newer\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &collector{}
	done := make(chan error, 1)
	go func() { done <- New(dir).Each(ctx, c.fn) }()

	require.Eventually(t, func() bool { return c.count() == 2 }, 5*time.Second, 10*time.Millisecond)

	// Hidden write then rename into place.
	tmp := filepath.Join(dir, ".c.jsonl.part")
	require.NoError(t, os.WriteFile(tmp, []byte("fresh\n"), 0600))
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, "c.jsonl")))

	require.Eventually(t, func() bool { return c.count() == 3 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, []string{"a.jsonl", "b.ndjson", "c.jsonl"}, c.order)
	assert.Equal(t, "fresh\n", c.files["c.jsonl"])
}

func TestSource_StopsOnCallbackError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jsonl"), []byte("x\n"), 0600))

	boom := errors.New("boom")
	err := New(dir).Each(context.Background(), func(string, io.Reader) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestSource_MissingDirectory(t *testing.T) {
	err := New(filepath.Join(t.TempDir(), "missing")).Each(context.Background(), func(string, io.Reader) error {
		return nil
	})
	assert.Error(t, err)
}

func TestSource_HandleEvent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.jsonl")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))
	sub := filepath.Join(dir, "sub.jsonl")
	require.NoError(t, os.Mkdir(sub, 0700))

	s := New(dir)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"create file", fsnotify.Event{Name: file, Op: fsnotify.Create}, true},
		{"write file", fsnotify.Event{Name: file, Op: fsnotify.Write}, false},
		{"create directory", fsnotify.Event{Name: sub, Op: fsnotify.Create}, false},
		{"hidden file", fsnotify.Event{Name: filepath.Join(dir, ".a.jsonl"), Op: fsnotify.Create}, false},
		{"vanished file", fsnotify.Event{Name: filepath.Join(dir, "gone.jsonl"), Op: fsnotify.Create}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := s.handleEvent(tc.event)
			assert.Equal(t, tc.want, ok)
		})
	}
}
