package main

import (
	"os"

	"github.com/deployctx/deployctx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
