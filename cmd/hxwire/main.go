package main

import (
	"os"

	"github.com/solatis/hxwire/cmd/hxwire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
