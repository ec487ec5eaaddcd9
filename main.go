package main

import (
	"os"

	"github.com/ovalabs/ovaterm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
