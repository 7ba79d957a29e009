//go:build mage

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary  = "lpexplorer"
	mainPkg = "./cmd/lpexplorer"
)

func ldflags() string {
	return "-s -w"
}

// Build builds LP Explorer for Linux with Green Tea GC
func Build() error {
	fmt.Println("Building LP Explorer for Linux with Go 1.25 + Green Tea GC...")
	env := map[string]string{
		"GOOS":         "linux",
		"GOARCH":       "amd64",
		"GOEXPERIMENT": "greenteagc",
	}
	return sh.RunWith(env, "go", "build", "-ldflags", ldflags(), "-o", binary+"-linux-amd64", mainPkg)
}

// BuildLocal builds LP Explorer for current platform
func BuildLocal() error {
	fmt.Printf("Building LP Explorer for %s/%s...\n", runtime.GOOS, runtime.GOARCH)
	return sh.Run("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Test runs tests
func Test() error {
	fmt.Println("Running tests...")
	return sh.Run("go", "test", "-v", "./...")
}

// Race runs tests with the race detector
func Race() error {
	fmt.Println("Running tests with -race...")
	return sh.Run("go", "test", "-race", "./...")
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	_ = os.Remove(binary)
	_ = os.Remove(binary + "-linux-amd64")
	return nil
}

// Run starts the server on demo data
func Run() error {
	mg.Deps(BuildLocal)
	return sh.RunWith(map[string]string{"DEMO": "true"}, "./"+binary, "serve")
}

// Update upgrades all Go dependencies
func Update() error {
	fmt.Println("Updating dependencies...")
	if err := sh.Run("go", "get", "-u", "./..."); err != nil {
		return err
	}
	return sh.Run("go", "mod", "tidy")
}

// Fmt runs gofmt on all Go files
func Fmt() error {
	fmt.Println("Formatting code...")
	return sh.Run("go", "fmt", "./...")
}

// Vet runs go vet on all Go files
func Vet() error {
	fmt.Println("Vetting code...")
	return sh.Run("go", "vet", "./...")
}

// Version prints the version that will be embedded in the binary
func Version() error {
	data, err := os.ReadFile("cmd/lpexplorer/VERSION")
	if err != nil {
		return err
	}
	fmt.Println(strings.TrimSpace(string(data)))
	return nil
}

// Deps downloads dependencies
func Deps() error {
	fmt.Println("Downloading dependencies...")
	return sh.Run("go", "mod", "download")
}

// Tidy tidies go.mod
func Tidy() error {
	fmt.Println("Tidying go.mod...")
	return sh.Run("go", "mod", "tidy")
}

// CI runs all checks for continuous integration
func CI() error {
	mg.SerialDeps(Deps, Fmt, Vet, Test)
	fmt.Println("All CI checks passed!")
	return nil
}
