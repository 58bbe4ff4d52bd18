//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Probe builds the CLI and checks that the search provider and model respond.
func Probe() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "probe", "--model")
}

// Run builds the CLI and answers the built-in example queries.
func Run() error {
	mg.Deps(Init, Build)
	return sh.RunV(binPath, "run")
}

// Export writes the research cache to data/cache.yaml.
func Export() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "cache", "export", "--format", "yaml", "--out", "data/cache.yaml")
}
