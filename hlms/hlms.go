// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hlms provides the high level material systems (HLMS): the
// unlit and physically based shader template sets, their default
// material datablocks, and a manager that registers them per render
// system. Shader compilation itself is done by the renderer.
package hlms

import (
	"fmt"
	"image/color"
	"path"
	"slices"
	"strings"

	"cogentcore.org/core/colors"
	"cogentcore.org/minimal/resource"
)

// DefaultTextureBufferSize is the default size in bytes of the texture
// buffers an HLMS allocates per frame.
const DefaultTextureBufferSize = 4 * 1024 * 1024

// Kind is the type of a material system.
type Kind int32

const (
	// Unlit materials are drawn with their color only.
	Unlit Kind = iota

	// Pbs materials are physically based and lit.
	Pbs

	numKinds
)

func (k Kind) String() string {
	switch k {
	case Unlit:
		return "Unlit"
	case Pbs:
		return "Pbs"
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// shader stage prefixes of template files.
var stages = []string{"VertexShader", "PixelShader", "GeometryShader", "HullShader", "DomainShader"}

// Hlms is one material system: a data folder holding its shader
// templates and pieces, plus shared library archives holding pieces.
type Hlms struct {
	Kind Kind

	// DataFolder holds the templates specific to this system.
	DataFolder resource.Archive

	// Library archives hold pieces shared by all systems.
	Library []resource.Archive

	// TextureBufferDefaultSize is the texture buffer size in bytes.
	TextureBufferDefaultSize int

	templates []string
	pieces    []string
}

// New returns a material system of the given kind indexed from
// dataFolder and library.
func New(kind Kind, dataFolder resource.Archive, library []resource.Archive) (*Hlms, error) {
	h := &Hlms{Kind: kind, DataFolder: dataFolder, Library: library, TextureBufferDefaultSize: DefaultTextureBufferSize}
	if err := h.Reindex(); err != nil {
		return nil, err
	}
	return h, nil
}

// NewUnlit returns an [Unlit] material system.
func NewUnlit(dataFolder resource.Archive, library []resource.Archive) (*Hlms, error) {
	return New(Unlit, dataFolder, library)
}

// NewPbs returns a [Pbs] material system.
func NewPbs(dataFolder resource.Archive, library []resource.Archive) (*Hlms, error) {
	return New(Pbs, dataFolder, library)
}

// Reindex lists the archives again and rebuilds the template and
// piece indexes.
func (h *Hlms) Reindex() error {
	var templates, pieces []string
	files, err := h.DataFolder.List(true)
	if err != nil {
		return fmt.Errorf("hlms %v: listing %q: %w", h.Kind, h.DataFolder.Name(), err)
	}
	for _, f := range files {
		switch {
		case isPiece(f):
			pieces = append(pieces, f)
		case isTemplate(f):
			templates = append(templates, f)
		}
	}
	for _, lib := range h.Library {
		files, err := lib.List(true)
		if err != nil {
			return fmt.Errorf("hlms %v: listing library %q: %w", h.Kind, lib.Name(), err)
		}
		for _, f := range files {
			if isPiece(f) {
				pieces = append(pieces, f)
			}
		}
	}
	slices.Sort(templates)
	slices.Sort(pieces)
	h.templates = templates
	h.pieces = slices.Compact(pieces)
	return nil
}

func isPiece(f string) bool {
	return strings.Contains(path.Base(f), "_piece_")
}

func isTemplate(f string) bool {
	base := path.Base(f)
	for _, s := range stages {
		if strings.HasPrefix(base, s) {
			return true
		}
	}
	return false
}

// Templates returns the shader template files, sorted.
func (h *Hlms) Templates() []string {
	return h.templates
}

// Pieces returns the shader piece files of the data folder and library, sorted.
func (h *Hlms) Pieces() []string {
	return h.pieces
}

// SetTextureBufferDefaultSize sets the texture buffer size in bytes.
func (h *Hlms) SetTextureBufferDefaultSize(size int) {
	h.TextureBufferDefaultSize = size
}

// Archives returns the data folder followed by the library archives.
func (h *Hlms) Archives() []resource.Archive {
	return append([]resource.Archive{h.DataFolder}, h.Library...)
}

// Datablock holds the parameters of one material.
type Datablock struct {
	Name string
	Kind Kind

	// Diffuse is the base color.
	Diffuse color.RGBA

	// Specular tints reflections; unused by [Unlit].
	Specular color.RGBA

	// Emissive is light emitted by the surface.
	Emissive color.RGBA

	// Roughness in [0, 1]; unused by [Unlit].
	Roughness float32

	// Metalness in [0, 1]; unused by [Unlit].
	Metalness float32
}

// NewDefaultDatablock returns the default material of a kind.
func NewDefaultDatablock(kind Kind) *Datablock {
	db := &Datablock{Name: "[Default " + kind.String() + "]", Kind: kind, Diffuse: colors.White}
	if kind == Pbs {
		db.Specular = colors.White
		db.Roughness = 1
	}
	return db
}
