//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the engine binary into bin/.
func (Build) Engine() error {
	if _, err := executeCmd("go", withArgs("mod", "download"), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/anima", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Writes the default configuration to anima.toml.
func (Build) Config() error {
	if _, err := executeCmd("go", withArgs("run", ".", "-write-config"), withStream()); err != nil {
		return err
	}
	return nil
}
