//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for pharmadesk using Mage.
//
// Usage:
//
//	mage build          Compile the pharmadesk binary to bin/
//	mage test           Run all tests
//	mage cover          Run all tests and write coverage.out
//	mage lint           Run golangci-lint
//	mage serve          Build and start the HTTP API on a scratch data dir
//	mage clean          Remove build artifacts
//	mage install        Install pharmadesk to GOPATH/bin
package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo       = "go"
	binaryName  = "pharmadesk"
	binaryDir   = "bin"
	cmdDir      = "./cmd/pharmadesk"
	cliPkg      = "github.com/mesh-intelligence/pharmadesk/internal/cli"
	coverFile   = "coverage.out"
	scratchData = ".pharmadesk-dev"
)

// version returns the closest git tag, or "dev" outside a tagged checkout.
func version() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(out) == "" {
		return "dev"
	}
	return strings.TrimPrefix(strings.TrimSpace(out), "v")
}

// commit returns the short hash of HEAD, or "" outside a git checkout.
func commit() string {
	out, err := sh.Output("git", "rev-parse", "--short=12", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags stamps the build metadata reported by pharmadesk version.
func ldflags() string {
	flags := []string{
		"-X " + cliPkg + ".Version=" + version(),
		"-X " + cliPkg + ".BuildDate=" + time.Now().UTC().Format(time.RFC3339),
	}
	if c := commit(); c != "" {
		flags = append(flags, "-X "+cliPkg+".Commit="+c)
	}
	return strings.Join(flags, " ")
}

// Build compiles the pharmadesk binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Cover runs all tests with coverage and prints the per-function summary.
func Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverFile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverFile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Serve builds the binary and runs the HTTP API against a scratch SQLite
// database in .pharmadesk-dev/.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, binaryName),
		"--config-dir", filepath.Join(scratchData, "config"),
		"--data-dir", filepath.Join(scratchData, "data"),
		"serve")
}

// Clean removes build artifacts and the scratch data directory.
func Clean() error {
	for _, dir := range []string{binaryDir, scratchData, coverFile} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
