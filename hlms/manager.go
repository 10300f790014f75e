// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hlms

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrAlreadyRegistered is returned when registering a second material
// system of the same kind.
var ErrAlreadyRegistered = errors.New("hlms: kind already registered")

// Manager holds the registered material systems and their default
// datablocks. It is not safe for concurrent use; changes detected off
// the render thread are applied through a [Watcher].
type Manager struct {
	systems    [numKinds]*Hlms
	datablocks [numKinds]*Datablock
	onReload   []func(h *Hlms)
	log        *slog.Logger
}

// NewManager returns an empty manager. A nil logger discards.
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{log: log}
}

// Register adds a material system. Only one system per kind can be
// registered.
func (m *Manager) Register(h *Hlms) error {
	if h.Kind < 0 || h.Kind >= numKinds {
		return fmt.Errorf("hlms: invalid kind %v", h.Kind)
	}
	if m.systems[h.Kind] != nil {
		return fmt.Errorf("%w: %v", ErrAlreadyRegistered, h.Kind)
	}
	m.systems[h.Kind] = h
	m.datablocks[h.Kind] = NewDefaultDatablock(h.Kind)
	m.log.Info("registered hlms", "kind", h.Kind, "folder", h.DataFolder.Name(),
		"templates", len(h.Templates()), "pieces", len(h.Pieces()))
	return nil
}

// Get returns the registered system of a kind, or nil.
func (m *Manager) Get(kind Kind) *Hlms {
	if kind < 0 || kind >= numKinds {
		return nil
	}
	return m.systems[kind]
}

// Systems returns the registered systems in kind order.
func (m *Manager) Systems() []*Hlms {
	var hs []*Hlms
	for _, h := range m.systems {
		if h != nil {
			hs = append(hs, h)
		}
	}
	return hs
}

// DefaultDatablock returns the default material of a registered kind, or nil.
func (m *Manager) DefaultDatablock(kind Kind) *Datablock {
	if kind < 0 || kind >= numKinds {
		return nil
	}
	return m.datablocks[kind]
}

// OnReload adds a function called after a system is reloaded.
func (m *Manager) OnReload(fun func(h *Hlms)) {
	m.onReload = append(m.onReload, fun)
}

// Reload reindexes the system of a kind and calls the reload functions.
func (m *Manager) Reload(kind Kind) error {
	h := m.Get(kind)
	if h == nil {
		return nil
	}
	if err := h.Reindex(); err != nil {
		return err
	}
	m.log.Info("reloaded hlms", "kind", kind, "templates", len(h.Templates()), "pieces", len(h.Pieces()))
	for _, fun := range m.onReload {
		fun(h)
	}
	return nil
}
