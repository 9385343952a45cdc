//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Captures a few frames of the testbed scene into out/.
func (Run) Demo() error {
	mg.Deps(Build.Demo)
	fmt.Println("Run demo...")
	if _, err := executeCmd("bin/lumen", withArgs("-config", "config.toml", "-out", "out", "-frames", "3"), withStream()); err != nil {
		return err
	}
	return nil
}
