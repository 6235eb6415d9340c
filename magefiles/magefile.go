// Package main provides build targets for the fieldsync project using Mage.
//
// Usage:
//
//	mage build            Compile the fieldsync and soilsim binaries to bin/
//	mage test:all         Run all tests
//	mage test:unit        Run tests excluding the cmd/ packages
//	mage lint             Run golangci-lint
//	mage clean            Remove build artifacts
//	mage install          Install fieldsync to GOPATH/bin

//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo     = "go"
	binaryDir = "bin"
)

// binaries maps output names to their command directories.
var binaries = map[string]string{
	"fieldsync": "./cmd/fieldsync",
	"soilsim":   "./cmd/soilsim",
}

// Build compiles the fieldsync and soilsim binaries to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	for name, dir := range binaries {
		if err := sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, name), dir); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the fieldsync binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, "fieldsync")
	dst := filepath.Join(gopath, "bin", "fieldsync")
	return sh.Copy(dst, src)
}
