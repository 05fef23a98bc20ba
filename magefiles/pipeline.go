//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract runs the CLI over every PDF in papers/ and saves the text to the corpus.
func Extract() error {
	mg.Deps(Build)

	pdfs, err := filepath.Glob(filepath.Join("papers", "*.pdf"))
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		fmt.Println("[extract] No PDFs in papers/.")
		return nil
	}
	args := append([]string{"extract", "--save", "--output", "yaml"}, pdfs...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Templates lists the templates in templates/ with their placeholders.
func Templates() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "template", "list", "templates")
}
