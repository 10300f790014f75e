// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"fmt"
	"io/fs"

	"cogentcore.org/minimal/cfgfile"
)

// Plugin extends a [Root], typically by installing a [RenderSystem].
// Plugins are compiled in and handed to [NewRoot]; the plugins file
// selects which of them are installed.
type Plugin interface {

	// Name is the plugin name used on Plugin= lines of the plugins file.
	Name() string

	// Install is called once when the plugin is loaded.
	Install(r *Root) error
}

// PluginFunc adapts a name and install function to the [Plugin] interface.
type PluginFunc struct {
	PluginName  string
	InstallFunc func(r *Root) error
}

func (pf *PluginFunc) Name() string          { return pf.PluginName }
func (pf *PluginFunc) Install(r *Root) error { return pf.InstallFunc(r) }

// loadPlugins reads the plugins file and installs every listed plugin
// from the available set. A missing plugins file is not an error.
func (r *Root) loadPlugins(available []Plugin) error {
	if r.opts.PluginsFile == "" {
		return nil
	}
	cf, err := cfgfile.Load(r.opts.PluginsFile)
	if errors.Is(err, fs.ErrNotExist) {
		r.log.Warn("plugins file not found, no plugins loaded", "file", r.opts.PluginsFile)
		return nil
	}
	if err != nil {
		return err
	}
	if folder := cf.Setting("PluginFolder", "", ""); folder != "" {
		r.log.Debug("plugin folder ignored, plugins are linked in", "folder", folder)
	}
	byName := make(map[string]Plugin, len(available))
	for _, p := range available {
		byName[p.Name()] = p
	}
	for _, name := range cf.MultiSetting("Plugin", "") {
		p, ok := byName[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
		}
		if err := r.InstallPlugin(p); err != nil {
			return err
		}
	}
	return nil
}

// InstallPlugin installs the given plugin, unless one with the same
// name is already installed.
func (r *Root) InstallPlugin(p Plugin) error {
	if _, ok := r.plugins.ValueByKeyTry(p.Name()); ok {
		return nil
	}
	if err := p.Install(r); err != nil {
		return fmt.Errorf("installing plugin %q: %w", p.Name(), err)
	}
	r.plugins.Add(p.Name(), p)
	r.log.Info("installed plugin", "plugin", p.Name())
	return nil
}

// Plugins returns the names of the installed plugins in load order.
func (r *Root) Plugins() []string {
	return r.plugins.Keys()
}
