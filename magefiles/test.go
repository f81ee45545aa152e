//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package's tests.
func (Test) Unit() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the tests with the race detector, the job and collision systems
// share work across goroutines.
func (Test) Race() error {
	mg.Deps(Test.Unit)
	if _, err := executeCmd("go", withArgs("test", "-race", "./engine/..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go vet over the module.
func (Test) Vet() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
