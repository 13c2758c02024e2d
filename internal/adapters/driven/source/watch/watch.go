// Package watch delivers envelope files dropped into a directory.
//
// Files already present are delivered first, oldest first. New files are
// picked up on fsnotify create events. Producers should write under a
// hidden name (leading dot) and rename into place, so a file is only seen
// once it is complete.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/bodacc/internal/core/ports/driven"
	"github.com/custodia-labs/bodacc/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.EnvelopeSource = (*Source)(nil)

// DefaultExtensions are the envelope file suffixes picked up.
var DefaultExtensions = []string{".jsonl", ".ndjson"}

// Source watches one directory for envelope files.
type Source struct {
	dir        string
	extensions []string
	seen       map[string]struct{}
}

// New creates a source for dir. With no extensions, DefaultExtensions apply.
func New(dir string, extensions ...string) *Source {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Source{
		dir:        dir,
		extensions: extensions,
		seen:       make(map[string]struct{}),
	}
}

// Each calls fn for every envelope file until ctx is done or fn fails.
// Cancellation is not an error.
func (s *Source) Each(ctx context.Context, fn func(name string, r io.Reader) error) (err error) {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch directory: %s is not a directory", s.dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() {
		if cerr := watcher.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing watcher: %w", cerr))
		}
	}()

	// Watch before scanning so files created during the scan are not lost.
	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watching %s: %w", s.dir, err)
	}

	backlog, err := s.backlog()
	if err != nil {
		return err
	}
	for _, path := range backlog {
		if err := s.deliver(path, fn); err != nil {
			return err
		}
	}

	logger.Info("watching %s", s.dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, ok := s.handleEvent(event)
			if !ok {
				continue
			}
			if err := s.deliver(path, fn); err != nil {
				return err
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch dir=%s: %v", s.dir, werr)
		}
	}
}

// handleEvent returns the file to deliver for an event, if any.
func (s *Source) handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) {
		return "", false
	}
	if !s.accepts(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

func (s *Source) backlog() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.dir, err)
	}

	type file struct {
		path string
		mod  int64
	}
	var files []file
	for _, entry := range entries {
		if entry.IsDir() || !s.accepts(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, file{filepath.Join(s.dir, entry.Name()), info.ModTime().UnixNano()})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].mod != files[j].mod {
			return files[i].mod < files[j].mod
		}
		return files[i].path < files[j].path
	})

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

func (s *Source) deliver(path string, fn func(name string, r io.Reader) error) error {
	if _, ok := s.seen[path]; ok {
		return nil
	}
	s.seen[path] = struct{}{}

	f, err := os.Open(path)
	if err != nil {
		// Moved away between the event and the open.
		logger.Warn("watch file=%s: %v", path, err)
		return nil
	}
	defer f.Close()

	logger.Debug("watch file=%s", path)
	return fn(path, f)
}

func (s *Source) accepts(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	for _, ext := range s.extensions {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}
