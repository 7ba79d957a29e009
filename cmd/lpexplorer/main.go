package main

import (
	_ "embed"
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/seuros/lpexplorer/internal/cli"
	"github.com/seuros/lpexplorer/internal/logging"
)

//go:embed VERSION
var versionFile string

var executeCLI = cli.Execute

func run() error {
	// .env entries never override variables already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.L().Warn("could not read .env", zap.Error(err))
	}

	return executeCLI(strings.TrimSpace(versionFile))
}

func main() {
	if err := run(); err != nil {
		logging.Fatal("lpexplorer execution failed", zap.Error(err))
	}
}
