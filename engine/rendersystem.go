// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"image"
	"slices"

	"cogentcore.org/core/base/ordmap"
)

// RenderSystem is a GPU rendering backend installed by a [Plugin].
// Exactly one render system is active on a [Root].
type RenderSystem interface {

	// Name is the unique render system name, as stored in the
	// "Render System" setting of the engine configuration file.
	Name() string

	// ConfigOptions returns the current configuration options, in order.
	ConfigOptions() []ConfigOption

	// SetConfigOption sets the named option to the given value.
	SetConfigOption(name, value string) error

	// ValidateConfigOptions checks that the options form a usable configuration.
	ValidateConfigOptions() error

	// CustomAttribute returns a backend specific capability or handle
	// by name, and whether it is known.
	CustomAttribute(name string) (any, bool)

	// CreateWindow creates the render window according to the current options.
	CreateWindow(title string) (Window, error)

	// Shutdown releases all backend resources.
	Shutdown() error
}

// Window is a render window created by a [RenderSystem].
type Window interface {

	// PumpEvents processes pending window system events.
	PumpEvents()

	// IsVisible returns whether the window is shown and not minimized.
	IsVisible() bool

	// IsClosed returns whether the user has asked to close the window.
	IsClosed() bool

	// Size returns the size of the drawable area in pixels.
	Size() image.Point

	// Destroy closes the window.
	Destroy()
}

// ConfigOption is one render system configuration option.
type ConfigOption struct {
	Name           string
	CurrentValue   string
	PossibleValues []string

	// Immutable options cannot be changed after the render system starts.
	Immutable bool
}

// OptionSet is an ordered set of [ConfigOption]s, for use by
// [RenderSystem] implementations.
type OptionSet struct {
	opts ordmap.Map[string, *ConfigOption]
}

// Add adds an option with the given current and possible values.
// An option with no possible values accepts any value.
func (ops *OptionSet) Add(name, current string, possible ...string) *ConfigOption {
	if ops.opts.Map == nil {
		ops.opts.Init()
	}
	opt := &ConfigOption{Name: name, CurrentValue: current, PossibleValues: possible}
	ops.opts.Add(name, opt)
	return opt
}

// List returns a copy of all options in order.
func (ops *OptionSet) List() []ConfigOption {
	out := make([]ConfigOption, 0, ops.opts.Len())
	for _, kv := range ops.opts.Order {
		opt := *kv.Value
		opt.PossibleValues = slices.Clone(opt.PossibleValues)
		out = append(out, opt)
	}
	return out
}

// Value returns the current value of the named option, or "".
func (ops *OptionSet) Value(name string) string {
	if opt, ok := ops.opts.ValueByKeyTry(name); ok {
		return opt.CurrentValue
	}
	return ""
}

// Set sets the named option, checking that it exists, is mutable,
// and that the value is one of its possible values.
func (ops *OptionSet) Set(name, value string) error {
	opt, ok := ops.opts.ValueByKeyTry(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	if opt.Immutable && opt.CurrentValue != value {
		return fmt.Errorf("option %q is immutable", name)
	}
	if len(opt.PossibleValues) > 0 && !slices.Contains(opt.PossibleValues, value) {
		return fmt.Errorf("%w: %q for option %q", ErrInvalidOptionValue, value, name)
	}
	opt.CurrentValue = value
	return nil
}
