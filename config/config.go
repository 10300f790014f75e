// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the application configuration for the minimal
// example, as set from the minimal.toml config file and command line flags.
// Console verbosity is not part of it: the -v, -vv and -q flags of the
// cli package set logx.UserLevel.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/go-homedir"
)

// Config is the application configuration.
type Config struct {

	// Plugins is the plugins list file naming the render system plugins to load.
	Plugins string `default:"plugins.cfg"`

	// EngineConfig is the render system configuration file that is
	// restored at startup and saved after the configuration dialog.
	EngineConfig string `default:"ogre.cfg"`

	// Log is the engine log file.
	Log string `default:"Ogre.log"`

	// Resources is the resource location file mapping resource groups
	// to archive locations.
	Resources string `default:"resources2.cfg"`

	// DataFolder is the folder holding the Hlms shader libraries.
	DataFolder string `default:"./"`

	// Title is the render window title.
	Title string `default:"Minimal Example"`

	// Workspace is the name of the compositor workspace definition.
	Workspace string `default:"PbsMaterialsWorkspace"`

	// MinimizedSleep is how long the frame loop sleeps while the
	// render window is not visible.
	MinimizedSleep time.Duration `default:"500ms"`

	// MaxFrameTime is the upper clamp, in seconds, of the time
	// since the last frame.
	MaxFrameTime float64 `default:"1"`

	// MaxFrames stops the frame loop after this many rendered frames; 0 is unlimited.
	MaxFrames int

	// WatchShaders reloads the Hlms shader libraries when they change on disk.
	WatchShaders bool
}

// ExpandPaths expands a leading ~ in all file paths to the user home directory.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{&c.Plugins, &c.EngineConfig, &c.Log, &c.Resources, &c.DataFolder} {
		ep, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("config: expanding %q: %w", *p, err)
		}
		*p = ep
	}
	return nil
}

// Validate returns an error describing every invalid field.
func (c *Config) Validate() error {
	var errs []error
	for _, f := range []struct{ name, val string }{
		{"Plugins", c.Plugins},
		{"EngineConfig", c.EngineConfig},
		{"Log", c.Log},
		{"Resources", c.Resources},
		{"DataFolder", c.DataFolder},
		{"Workspace", c.Workspace},
	} {
		if f.val == "" {
			errs = append(errs, fmt.Errorf("config: %s must not be empty", f.name))
		}
	}
	if c.MaxFrameTime <= 0 {
		errs = append(errs, fmt.Errorf("config: MaxFrameTime must be positive, got %g", c.MaxFrameTime))
	}
	if c.MinimizedSleep < 0 {
		errs = append(errs, fmt.Errorf("config: MinimizedSleep must not be negative, got %v", c.MinimizedSleep))
	}
	if c.MaxFrames < 0 {
		errs = append(errs, fmt.Errorf("config: MaxFrames must not be negative, got %d", c.MaxFrames))
	}
	return errors.Join(errs...)
}
