package main

import (
	"os"

	"github.com/reelrent/reelrent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
