package main

import (
	"os"

	"github.com/parley-ai/parley/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
