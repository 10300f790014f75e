// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resource

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fsx"
	"cogentcore.org/core/base/ordmap"
	"github.com/h2non/filetype"
)

// Archive types understood by [NewArchiveManager].
const (
	FileSystem = "FileSystem"
	Zip        = "Zip"
)

// Archive is a source of resource files: a directory, a zip file, etc.
// Names within an archive always use '/' separators.
type Archive interface {

	// Name is the location the archive was loaded from.
	Name() string

	// Type is the archive type, e.g. [FileSystem].
	Type() string

	// ReadOnly returns whether the archive was loaded read-only.
	ReadOnly() bool

	// List returns the files in the archive, sorted. If recursive is
	// false only files at the top level are returned.
	List(recursive bool) ([]string, error)

	// Exists returns whether the named file exists.
	Exists(name string) bool

	// Open opens the named file for reading.
	Open(name string) (io.ReadCloser, error)

	// Close releases the archive.
	Close() error
}

// Factory opens an archive of one type.
type Factory func(name string, readOnly bool) (Archive, error)

// ArchiveManager loads and caches archives by name.
type ArchiveManager struct {
	factories map[string]Factory
	archives  ordmap.Map[string, Archive]
}

// NewArchiveManager returns a manager that can load [FileSystem]
// and [Zip] archives.
func NewArchiveManager() *ArchiveManager {
	am := &ArchiveManager{factories: map[string]Factory{}}
	am.archives.Init()
	am.RegisterFactory(FileSystem, OpenFileSystem)
	am.RegisterFactory(Zip, OpenZip)
	return am
}

// RegisterFactory adds or replaces the factory for an archive type.
func (am *ArchiveManager) RegisterFactory(typ string, f Factory) {
	am.factories[typ] = f
}

// Load returns the archive at name, opening it with the factory for
// typ if it is not already loaded.
func (am *ArchiveManager) Load(name, typ string, readOnly bool) (Archive, error) {
	f, ok := am.factories[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchiveType, typ)
	}
	if ar, ok := am.archives.ValueByKeyTry(name); ok {
		if ar.Type() != typ {
			return nil, fmt.Errorf("archive %q already loaded as %s, not %s", name, ar.Type(), typ)
		}
		return ar, nil
	}
	ar, err := f(name, readOnly)
	if err != nil {
		return nil, err
	}
	am.archives.Add(name, ar)
	return ar, nil
}

// Archive returns the loaded archive with the given name, or nil.
func (am *ArchiveManager) Archive(name string) Archive {
	ar, _ := am.archives.ValueByKeyTry(name)
	return ar
}

// Unload closes and forgets the named archive.
func (am *ArchiveManager) Unload(name string) error {
	ar, ok := am.archives.ValueByKeyTry(name)
	if !ok {
		return nil
	}
	am.archives.DeleteKey(name)
	return ar.Close()
}

// Close closes all loaded archives.
func (am *ArchiveManager) Close() error {
	var errs []error
	for _, ar := range am.archives.Values() {
		errs = append(errs, ar.Close())
	}
	am.archives.Reset()
	return errors.Join(errs...)
}

// fileSystemArchive is a directory on disk.
type fileSystemArchive struct {
	dir      string
	fsys     fs.FS
	readOnly bool
}

// OpenFileSystem opens the directory dir as an [Archive].
func OpenFileSystem(dir string, readOnly bool) (Archive, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening FileSystem archive: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("opening FileSystem archive: %q is not a directory", dir)
	}
	return &fileSystemArchive{dir: dir, fsys: os.DirFS(dir), readOnly: readOnly}, nil
}

func (fa *fileSystemArchive) Name() string   { return fa.dir }
func (fa *fileSystemArchive) Type() string   { return FileSystem }
func (fa *fileSystemArchive) ReadOnly() bool { return fa.readOnly }
func (fa *fileSystemArchive) Close() error   { return nil }

func (fa *fileSystemArchive) List(recursive bool) ([]string, error) {
	return listFS(fa.fsys, recursive)
}

func (fa *fileSystemArchive) Exists(name string) bool {
	return errors.Log1(fsx.FileExistsFS(fa.fsys, name))
}

func (fa *fileSystemArchive) Open(name string) (io.ReadCloser, error) {
	return fa.fsys.Open(name)
}

// zipArchive is a zip file on disk.
type zipArchive struct {
	name     string
	rc       *zip.ReadCloser
	readOnly bool
}

// OpenZip opens the zip file at name as a read-only [Archive].
func OpenZip(name string, readOnly bool) (Archive, error) {
	if err := checkZip(name); err != nil {
		return nil, err
	}
	rc, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("opening Zip archive: %w", err)
	}
	return &zipArchive{name: name, rc: rc, readOnly: true}, nil
}

// checkZip sniffs the file header so that a misconfigured location
// reports what it actually is.
func checkZip(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("opening Zip archive: %w", err)
	}
	defer f.Close()
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("opening Zip archive %q: %w", name, err)
	}
	head = head[:n]
	if filetype.Is(head, "zip") {
		return nil
	}
	kind, _ := filetype.Match(head)
	return fmt.Errorf("opening Zip archive %q: %w (detected %q)", name, ErrNotZip, kind.Extension)
}

func (za *zipArchive) Name() string   { return za.name }
func (za *zipArchive) Type() string   { return Zip }
func (za *zipArchive) ReadOnly() bool { return za.readOnly }
func (za *zipArchive) Close() error   { return za.rc.Close() }

func (za *zipArchive) List(recursive bool) ([]string, error) {
	return listFS(za.rc, recursive)
}

func (za *zipArchive) Exists(name string) bool {
	return errors.Log1(fsx.FileExistsFS(za.rc, name))
}

func (za *zipArchive) Open(name string) (io.ReadCloser, error) {
	return za.rc.Open(name)
}

// listFS lists the regular files of fsys in sorted order.
func listFS(fsys fs.FS, recursive bool) ([]string, error) {
	var names []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if !recursive && path.Dir(p) != "." {
			return nil
		}
		names = append(names, p)
		return nil
	})
	sort.Strings(names)
	return names, err
}
