// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Plugins:        "plugins.cfg",
		EngineConfig:   "ogre.cfg",
		Log:            "Ogre.log",
		Resources:      "resources2.cfg",
		DataFolder:     "./",
		Workspace:      "PbsMaterialsWorkspace",
		MinimizedSleep: 500 * time.Millisecond,
		MaxFrameTime:   1,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	c := validConfig()
	c.Resources = ""
	c.MaxFrameTime = 0
	c.MaxFrames = -1
	err := c.Validate()
	assert.ErrorContains(t, err, "Resources must not be empty")
	assert.ErrorContains(t, err, "MaxFrameTime must be positive")
	assert.ErrorContains(t, err, "MaxFrames must not be negative")
}

func TestExpandPaths(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	c := validConfig()
	c.EngineConfig = "~/minimal/ogre.cfg"
	require.NoError(t, c.ExpandPaths())
	assert.Equal(t, filepath.Join(home, "minimal", "ogre.cfg"), c.EngineConfig)
	assert.Equal(t, "plugins.cfg", c.Plugins)
}
