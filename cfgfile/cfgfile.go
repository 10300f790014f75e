// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cfgfile reads and writes the plain section-based configuration
// files used by the engine: the plugins list, the render system
// configuration, and the resource location list.
//
// A file is a sequence of optional [Section] headers, each followed by
// key=value settings. The separator is the first of '=', ':' or tab.
// Lines starting with '#' or '@' are comments. Settings that appear
// before any header belong to the unnamed section "". Keys may repeat
// within a section, and all settings are kept in file order.
package cfgfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"cogentcore.org/core/base/ordmap"
)

// Separators are the characters that separate a key from its value.
const Separators = "=:\t"

// Setting is one key / value pair within a section.
type Setting struct {
	Key   string
	Value string
}

// File is a parsed configuration file.
type File struct {

	// Filename is the file this was loaded from, if any.
	Filename string

	// sections holds the settings of each section in file order.
	sections ordmap.Map[string, []Setting]
}

// New returns a new empty File.
func New() *File {
	f := &File{}
	f.sections.Init()
	return f
}

// Load opens and parses the given file.
func Load(filename string) (*File, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	f, err := Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("cfgfile: %s: %w", filename, err)
	}
	f.Filename = filename
	return f, nil
}

// Parse parses configuration text from the given reader.
func Parse(r io.Reader) (*File, error) {
	f := New()
	sec := ""
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == '@' {
			continue
		}
		if line[0] == '[' {
			end := strings.IndexByte(line, ']')
			if end < 0 {
				return nil, fmt.Errorf("line %d: unterminated section header %q", ln, line)
			}
			sec = strings.TrimSpace(line[1:end])
			f.ensure(sec)
			continue
		}
		key, val := line, ""
		if si := strings.IndexAny(line, Separators); si >= 0 {
			key = strings.TrimSpace(line[:si])
			val = strings.TrimSpace(line[si+1:])
		}
		f.Add(sec, key, val)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) ensure(section string) {
	if _, ok := f.sections.IndexByKeyTry(section); !ok {
		f.sections.Add(section, nil)
	}
}

// Sections returns the section names in file order.
func (f *File) Sections() []string {
	return f.sections.Keys()
}

// HasSection returns whether the given section exists.
func (f *File) HasSection(section string) bool {
	_, ok := f.sections.IndexByKeyTry(section)
	return ok
}

// Settings returns the settings of the given section in file order.
func (f *File) Settings(section string) []Setting {
	st, _ := f.sections.ValueByKeyTry(section)
	return st
}

// Setting returns the first value for key in the given section,
// or def if there is none.
func (f *File) Setting(key, section, def string) string {
	for _, s := range f.Settings(section) {
		if s.Key == key {
			return s.Value
		}
	}
	return def
}

// MultiSetting returns all values for key in the given section.
func (f *File) MultiSetting(key, section string) []string {
	var vals []string
	for _, s := range f.Settings(section) {
		if s.Key == key {
			vals = append(vals, s.Value)
		}
	}
	return vals
}

// Add appends a setting to the given section, creating the section
// if needed. Existing settings with the same key are kept.
func (f *File) Add(section, key, value string) {
	idx, ok := f.sections.IndexByKeyTry(section)
	if !ok {
		f.sections.Add(section, []Setting{{key, value}})
		return
	}
	kv := &f.sections.Order[idx]
	kv.Value = append(kv.Value, Setting{key, value})
}

// Set replaces all values of key in the given section with a single value.
func (f *File) Set(section, key, value string) {
	idx, ok := f.sections.IndexByKeyTry(section)
	if !ok {
		f.Add(section, key, value)
		return
	}
	kv := &f.sections.Order[idx]
	out := kv.Value[:0]
	set := false
	for _, s := range kv.Value {
		if s.Key != key {
			out = append(out, s)
			continue
		}
		if !set {
			out = append(out, Setting{key, value})
			set = true
		}
	}
	if !set {
		out = append(out, Setting{key, value})
	}
	kv.Value = out
}

// Write writes the file in the same format that Parse reads,
// using '=' as the separator.
func (f *File) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	n := 0
	// the unnamed section has no header, so it must come first
	for _, s := range f.Settings("") {
		fmt.Fprintf(bw, "%s=%s\n", s.Key, s.Value)
		n++
	}
	for _, kv := range f.sections.Order {
		if kv.Key == "" {
			continue
		}
		if n > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "[%s]\n", kv.Key)
		for _, s := range kv.Value {
			fmt.Fprintf(bw, "%s=%s\n", s.Key, s.Value)
		}
		n++
	}
	return bw.Flush()
}

// Save writes the file to the given filename.
func (f *File) Save(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := f.Write(fp); err != nil {
		fp.Close()
		return err
	}
	f.Filename = filename
	return fp.Close()
}
