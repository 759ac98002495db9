package shaders

import (
	_ "embed"
)

//go:embed wgsl/raymarch.wgsl
var raymarchWGSL string

// ModuleRaymarch is the name of the built-in full-screen ray-march shader.
const ModuleRaymarch = "raymarch"

// BuiltinSource returns the embedded WGSL source for a built-in module name.
func BuiltinSource(name string) (string, bool) {
	switch name {
	case ModuleRaymarch:
		return raymarchWGSL, true
	default:
		return "", false
	}
}
