//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Grows icicles on the sample roof and writes OBJ plus a preview PNG.
func (Run) Generate() error {
	fmt.Println("Run icegen...")
	if _, err := executeCmd("go", withArgs("run", ".",
		"-in", "testdata/roof.obj",
		"-out", "bin/icicles.obj",
		"-preview", "bin/preview.png"), withStream()); err != nil {
		return err
	}
	return nil
}
