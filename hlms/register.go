// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hlms

import (
	"fmt"
	"path/filepath"

	"cogentcore.org/minimal/engine"
	"cogentcore.org/minimal/resource"
)

// MapNoOverwriteAttr is the render system attribute reporting whether
// dynamic texture buffers can be mapped without overwrite. Direct3D 11.0
// devices report false.
const MapNoOverwriteAttr = "MapNoOverwriteOnDynamicBufferSRV"

// LowTextureBufferSize is used instead of [DefaultTextureBufferSize] on
// Direct3D11 devices without [MapNoOverwriteAttr], which keeps both
// systems under the driver discard limit.
const LowTextureBufferSize = 512 * 1024

// Register loads the shader archives under dataFolder for the syntax of
// rs, then creates and registers the unlit and PBS systems with m.
// Archives are loaded read-only from Hlms/Common/<syntax>,
// Hlms/Common/Any, Hlms/Unlit/<syntax> and Hlms/Pbs/<syntax>.
func Register(rs engine.RenderSystem, am *resource.ArchiveManager, m *Manager, dataFolder string) (unlit, pbs *Hlms, err error) {
	syntax := ShaderSyntax(rs.Name())
	load := func(elem ...string) (resource.Archive, error) {
		name := filepath.Join(append([]string{dataFolder, "Hlms"}, elem...)...)
		return am.Load(name, resource.FileSystem, true)
	}

	common, err := load("Common", syntax)
	if err != nil {
		return nil, nil, fmt.Errorf("hlms: loading library: %w", err)
	}
	commonAny, err := load("Common", "Any")
	if err != nil {
		return nil, nil, fmt.Errorf("hlms: loading library: %w", err)
	}
	library := []resource.Archive{common, commonAny}

	unlitFolder, err := load("Unlit", syntax)
	if err != nil {
		return nil, nil, fmt.Errorf("hlms: loading unlit: %w", err)
	}
	if unlit, err = NewUnlit(unlitFolder, library); err != nil {
		return nil, nil, err
	}
	if err = m.Register(unlit); err != nil {
		return nil, nil, err
	}

	pbsFolder, err := load("Pbs", syntax)
	if err != nil {
		return nil, nil, fmt.Errorf("hlms: loading pbs: %w", err)
	}
	if pbs, err = NewPbs(pbsFolder, library); err != nil {
		return nil, nil, err
	}
	if err = m.Register(pbs); err != nil {
		return nil, nil, err
	}

	if rs.Name() == Direct3D11 && !supportsMapNoOverwrite(rs) {
		unlit.SetTextureBufferDefaultSize(LowTextureBufferSize)
		pbs.SetTextureBufferDefaultSize(LowTextureBufferSize)
		m.log.Info("lowered hlms texture buffer size", "bytes", LowTextureBufferSize)
	}
	return unlit, pbs, nil
}

// supportsMapNoOverwrite treats a missing or non-bool attribute as unsupported.
func supportsMapNoOverwrite(rs engine.RenderSystem) bool {
	v, ok := rs.CustomAttribute(MapNoOverwriteAttr)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}
