package main

import (
	"os"

	"github.com/fleetsense/evmaint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
