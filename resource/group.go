// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resource manages resource archives and the named resource
// groups that index them.
package resource

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"slices"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/minimal/cfgfile"
)

// DefaultGroupName is the group used when none is given.
const DefaultGroupName = "General"

var (
	// ErrUnknownArchiveType is returned when loading an archive type with
	// no registered [Factory].
	ErrUnknownArchiveType = errors.New("resource: unknown archive type")

	// ErrNotZip is returned when a Zip location is not a zip file.
	ErrNotZip = errors.New("resource: not a zip file")

	// ErrNotFound is returned when a resource is not in its group.
	ErrNotFound = errors.New("resource: not found")

	// ErrUnknownGroup is returned for groups with no locations.
	ErrUnknownGroup = errors.New("resource: unknown group")
)

// Location is one archive registered with a group.
type Location struct {
	Archive   Archive
	Recursive bool
}

// Group is a named set of resource locations. Resources are
// addressed by file name, without directories.
type Group struct {
	Name      string
	Locations []Location

	// index maps resource names to the archive path that provides them.
	index       map[string]entry
	initialised bool
}

type entry struct {
	archive Archive
	path    string
}

// Initialised returns whether the group has been indexed.
func (g *Group) Initialised() bool {
	return g.initialised
}

// GroupManager holds the resource groups.
type GroupManager struct {
	archives *ArchiveManager
	groups   ordmap.Map[string, *Group]
	log      *slog.Logger
}

// NewGroupManager returns a group manager that loads archives with am.
// A nil logger discards.
func NewGroupManager(am *ArchiveManager, log *slog.Logger) *GroupManager {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	gm := &GroupManager{archives: am, log: log}
	gm.groups.Init()
	return gm
}

// Archives returns the archive manager used by the group manager.
func (gm *GroupManager) Archives() *ArchiveManager {
	return gm.archives
}

// AddResourceLocation loads the archive name of the given type and adds
// it to group, creating the group if needed. An empty group means
// [DefaultGroupName]. Resources are indexed by the next initialisation.
func (gm *GroupManager) AddResourceLocation(name, typ, group string, recursive bool) error {
	if group == "" {
		group = DefaultGroupName
	}
	ar, err := gm.archives.Load(name, typ, true)
	if err != nil {
		return fmt.Errorf("adding resource location %q to group %q: %w", name, group, err)
	}
	g := gm.group(group)
	g.Locations = append(g.Locations, Location{Archive: ar, Recursive: recursive})
	g.initialised = false
	gm.log.Debug("added resource location", "group", group, "type", typ, "name", name)
	return nil
}

func (gm *GroupManager) group(name string) *Group {
	if g, ok := gm.groups.ValueByKeyTry(name); ok {
		return g
	}
	g := &Group{Name: name}
	gm.groups.Add(name, g)
	return g
}

// Groups returns the group names in creation order.
func (gm *GroupManager) Groups() []string {
	return gm.groups.Keys()
}

// Group returns the named group, or nil.
func (gm *GroupManager) Group(name string) *Group {
	g, _ := gm.groups.ValueByKeyTry(name)
	return g
}

// Locations returns the locations of the named group.
func (gm *GroupManager) Locations(group string) []Location {
	if g := gm.Group(group); g != nil {
		return g.Locations
	}
	return nil
}

// InitialiseAllResourceGroups indexes every group.
func (gm *GroupManager) InitialiseAllResourceGroups() error {
	var errs []error
	for _, name := range gm.Groups() {
		errs = append(errs, gm.InitialiseResourceGroup(name))
	}
	return errors.Join(errs...)
}

// InitialiseResourceGroup indexes the resources of the named group.
// When two locations provide the same name, the first one registered wins.
func (gm *GroupManager) InitialiseResourceGroup(name string) error {
	g := gm.Group(name)
	if g == nil {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	g.index = map[string]entry{}
	for _, loc := range g.Locations {
		files, err := loc.Archive.List(loc.Recursive)
		if err != nil {
			return fmt.Errorf("indexing %q in group %q: %w", loc.Archive.Name(), name, err)
		}
		for _, f := range files {
			base := path.Base(f)
			if prev, ok := g.index[base]; ok {
				gm.log.Warn("duplicate resource, keeping first", "group", name, "resource", base,
					"kept", prev.archive.Name(), "ignored", loc.Archive.Name())
				continue
			}
			g.index[base] = entry{archive: loc.Archive, path: f}
		}
	}
	g.initialised = true
	gm.log.Info("initialised resource group", "group", name, "locations", len(g.Locations), "resources", len(g.index))
	return nil
}

// Resources returns the sorted indexed resource names of a group.
func (gm *GroupManager) Resources(group string) []string {
	g := gm.Group(group)
	if g == nil {
		return nil
	}
	names := make([]string, 0, len(g.index))
	for n := range g.index {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// ResourceExists returns whether the group provides the named resource.
func (gm *GroupManager) ResourceExists(group, name string) bool {
	g := gm.Group(group)
	if g == nil {
		return false
	}
	_, ok := g.index[name]
	return ok
}

// Open opens the named resource of a group.
func (gm *GroupManager) Open(group, name string) (io.ReadCloser, error) {
	g := gm.Group(group)
	if g == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}
	e, ok := g.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in group %q", ErrNotFound, name, group)
	}
	return e.archive.Open(e.path)
}

// SetupFromConfig registers every location of a resource configuration
// file: each section names a group, each setting key an archive type and
// its value the archive location.
func SetupFromConfig(cf *cfgfile.File, gm *GroupManager) error {
	for _, sec := range cf.Sections() {
		for _, s := range cf.Settings(sec) {
			if err := gm.AddResourceLocation(s.Value, s.Key, sec, false); err != nil {
				return err
			}
		}
	}
	return nil
}
