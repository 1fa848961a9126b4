package main

import (
	"os"

	"github.com/finlens-dev/finlens/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
