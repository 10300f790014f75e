// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpurs

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"cogentcore.org/minimal/hlms"
)

// Platform is a platform with an operating system and an architecture.
type Platform struct {
	OS   string
	Arch string
}

// Current returns the platform the program runs on.
func Current() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// String returns the platform as a string in the form "os/arch".
func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// SetString sets the platform from the given string of format os[/arch].
// A missing arch is "*".
func (p *Platform) SetString(platform string) error {
	before, after, found := strings.Cut(platform, "/")
	if before == "" {
		return fmt.Errorf("error parsing platform %q: missing operating system", platform)
	}
	if !found {
		*p = Platform{OS: before, Arch: "*"}
		return nil
	}
	*p = Platform{OS: before, Arch: after}
	return nil
}

// SystemOS lists the operating systems that each render system can open
// windows on.
var SystemOS = map[string][]string{
	Vulkan:          {"linux", "windows"},
	hlms.Direct3D11: {"windows"},
	hlms.Metal:      {"darwin"},
	hlms.OpenGL3:    {"darwin", "linux", "windows"},
}

// Supports determines whether the named render system runs on the
// platform. If it does not, it returns an error detailing why.
func (p Platform) Supports(system string) error {
	oss, ok := SystemOS[system]
	if !ok {
		return fmt.Errorf("could not find render system %s; please check that you spelled it correctly", system)
	}
	if !slices.Contains(oss, p.OS) {
		return fmt.Errorf("render system %s is not supported on %s", system, p)
	}
	return nil
}
