//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the marcher binary. WGSL shaders are embedded and compiled to
// SPIR-V at startup, so there is no separate shader build step.
func (Build) Binary() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/marcher", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go vet across the module.
func (Build) Vet() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
