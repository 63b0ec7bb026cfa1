package main

import (
	"os"
)

var version = "dev"

func main() {
	if err := newCLI(version, os.Stdout, os.Stderr).Run(); err != nil {
		os.Exit(1)
	}
}
