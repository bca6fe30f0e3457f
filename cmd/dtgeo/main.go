package main

import (
	"os"

	"github.com/dtgeo/dtgeo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
