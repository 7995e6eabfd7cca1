//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary       = "seqfile"
	mainPackage  = "./cmd/seqfile"
	coverProfile = "coverage.out"
	lintConfig   = ".golangci.yml"
)

// Default target to run when none is specified
var Default = Build

// Build builds the seqfile binary
func Build() error {
	fmt.Println("Building " + binary + "...")
	return sh.Run("go", "build", "-trimpath", "-o", binary, mainPackage)
}

// Install installs seqfile into GOBIN
func Install() error {
	fmt.Println("Installing " + binary + "...")
	return sh.Run("go", "install", "-trimpath", mainPackage)
}

// Test runs the unit tests with the race detector and writes a cover profile
func Test() error {
	fmt.Println("Running unit tests...")
	return sh.RunV("go", "test", "-race", "-shuffle=on", "-coverprofile="+coverProfile, "./...")
}

// TestReservations runs the concurrent reservation suite many times over,
// since lost claims only show up under contention
func TestReservations() error {
	fmt.Println("Stressing concurrent reservations...")
	return sh.RunV("go", "test", "-race", "-count=20", "-run", "TestConcurrentReservations", "./pkg/seqfile/")
}

// TestIntegration runs the multi-process tests that execute the real binary
func TestIntegration() error {
	fmt.Println("Running integration tests...")
	return sh.RunV("go", "test", "-tags=integration", "-race", mainPackage+"/...")
}

// TestForFail runs every test once, stopping at the first failure
func TestForFail() error {
	fmt.Println("Running tests for overall pass/fail...")
	return run(context.Background(), "go", "test", "-timeout=60s", "-failfast", "-race", "-tags=integration", "./...")
}

// Lint lints the codebase
func Lint() error {
	fmt.Println("Linting...")
	return run(context.Background(), "golangci-lint", "run", "-c", lintConfig, "./...")
}

// Fmt formats the code
func Fmt() error {
	fmt.Println("Formatting code...")
	if err := sh.Run("gofmt", "-s", "-w", "cmd", "internal", "pkg"); err != nil {
		return err
	}
	return sh.Run("goimports", "-local", "github.com/joe/seqfile", "-w", "cmd", "internal", "pkg")
}

// Tidy prunes go.mod down to the modules the code imports
func Tidy() error {
	fmt.Println("Tidying modules...")
	return sh.Run("go", "mod", "tidy")
}

// CheckNils checks for nils
func CheckNils() error {
	fmt.Println("Running check for nils...")
	return run(context.Background(), "nilaway", "./...")
}

// Check runs everything CI runs: formatting, lint, unit and integration tests
func Check() {
	mg.SerialDeps(Fmt, Lint, Test, TestIntegration, CheckNils)
}

// Coverage prints per-function coverage and writes an HTML report
func Coverage() error {
	mg.Deps(Test)
	if err := sh.RunV("go", "tool", "cover", "-func="+coverProfile); err != nil {
		return err
	}
	fmt.Println("Writing coverage.html...")
	return sh.Run("go", "tool", "cover", "-html="+coverProfile, "-o", "coverage.html")
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning...")
	for _, artifact := range []string{binary, coverProfile, "coverage.html"} {
		if err := sh.Rm(artifact); err != nil {
			return err
		}
	}
	return nil
}

// run executes a command with the terminal attached
func run(c context.Context, command string, arg ...string) error {
	cmd := exec.CommandContext(c, command, arg...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
