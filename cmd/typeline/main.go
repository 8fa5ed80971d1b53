package main

import (
	"os"

	"github.com/opencode-ai/typeline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
