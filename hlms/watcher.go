// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hlms

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"cogentcore.org/minimal/engine"
	"cogentcore.org/minimal/resource"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads material systems when files in their FileSystem
// archives change. Events are collected on a background goroutine
// and applied on the render thread by FrameStarted, so a Watcher is
// added to the root as an [engine.FrameListener].
type Watcher struct {
	m       *Manager
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
	closeErr  error

	// kinds maps watched directories to the systems that read them.
	kinds map[string][]Kind

	mu    sync.Mutex
	dirty [numKinds]bool
}

// NewWatcher starts watching the archives of every system registered
// with m.
func NewWatcher(m *Manager) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{m: m, watcher: fw, done: make(chan struct{}), kinds: map[string][]Kind{}}
	for _, h := range m.Systems() {
		for _, ar := range h.Archives() {
			if ar.Type() != resource.FileSystem {
				continue
			}
			if err := w.addTree(ar.Name(), h.Kind); err != nil {
				fw.Close()
				return nil, err
			}
		}
	}
	w.wg.Add(1)
	go w.watch()
	return w, nil
}

func (w *Watcher) addTree(root string, kind Kind) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		p = filepath.Clean(p)
		if _, ok := w.kinds[p]; !ok {
			if err := w.watcher.Add(p); err != nil {
				return err
			}
		}
		w.kinds[p] = append(w.kinds[p], kind)
		return nil
	})
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Has(fsnotify.Create) {
				w.addCreated(ev.Name)
			}
			w.mark(filepath.Dir(ev.Name))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.m.log.Warn("hlms watcher", "err", err)
		}
	}
}

// addCreated watches a directory created inside a watched one, for the
// systems that read its parent.
func (w *Watcher) addCreated(name string) {
	fi, err := os.Stat(name)
	if err != nil || !fi.IsDir() {
		return
	}
	for _, k := range w.kinds[filepath.Clean(filepath.Dir(name))] {
		if err := w.addTree(name, k); err != nil {
			w.m.log.Warn("hlms watcher: watching new folder", "folder", name, "err", err)
		}
	}
}

func (w *Watcher) mark(dir string) {
	kinds := w.kinds[filepath.Clean(dir)]
	if len(kinds) == 0 {
		return
	}
	w.mu.Lock()
	for _, k := range kinds {
		w.dirty[k] = true
	}
	w.mu.Unlock()
}

// Pending returns whether any system is waiting to be reloaded.
func (w *Watcher) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, d := range w.dirty {
		if d {
			return true
		}
	}
	return false
}

// Apply reloads every system whose files changed since the last call.
// It must be called on the render thread.
func (w *Watcher) Apply() error {
	w.mu.Lock()
	dirty := w.dirty
	w.dirty = [numKinds]bool{}
	w.mu.Unlock()
	for k, d := range dirty {
		if !d {
			continue
		}
		if err := w.m.Reload(Kind(k)); err != nil {
			w.m.log.Error("reloading hlms", "kind", Kind(k), "err", err)
		}
	}
	return nil
}

// FrameStarted applies pending reloads before the frame renders.
func (w *Watcher) FrameStarted(ev engine.FrameEvent) error {
	return w.Apply()
}

func (w *Watcher) FrameEnded(ev engine.FrameEvent) error { return nil }

// Close stops watching. Later calls do nothing.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.watcher.Close()
		w.wg.Wait()
	})
	return w.closeErr
}
