// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hlms

// Render system names that select a shader syntax.
const (
	Direct3D11 = "Direct3D11 Rendering Subsystem"
	Metal      = "Metal Rendering Subsystem"
	OpenGL3    = "OpenGL 3+ Rendering Subsystem"
)

// ShaderSyntax returns the shader dialect used by the named render
// system: "HLSL" for Direct3D11, "Metal" for Metal, and "GLSL" otherwise.
func ShaderSyntax(renderSystemName string) string {
	switch renderSystemName {
	case Direct3D11:
		return "HLSL"
	case Metal:
		return "Metal"
	default:
		return "GLSL"
	}
}
