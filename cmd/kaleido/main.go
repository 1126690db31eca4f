package main

import (
	"os"

	"github.com/msto63/kaleido/cmd/kaleido/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
