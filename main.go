package main

import (
	"os"

	"github.com/meysamhadeli/renamai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
