package main

import (
	"os"

	"github.com/firefly-engineering/nix-install-pkgs/cmd"
	"github.com/firefly-engineering/nix-install-pkgs/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
