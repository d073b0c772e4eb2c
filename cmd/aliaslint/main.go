package main

import (
	"os"

	"github.com/aliaslint/aliaslint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
