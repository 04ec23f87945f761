package main

import (
	"os"

	"github.com/conneroisu/planwriter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
