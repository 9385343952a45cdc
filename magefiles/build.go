//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Tidies the module and builds the demo binary into bin/.
func (Build) Demo() error {
	if err := goTidy(); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/lumen", "."), withStream()); err != nil {
		return err
	}
	return nil
}

type Test mg.Namespace

// Runs the engine unit tests.
func (Test) Unit() error {
	if _, err := executeCmd("go", withArgs("test", "-count=1", "./..."), withDir("engine"), withStream()); err != nil {
		return err
	}
	return nil
}
