package main

import (
	"os"

	"github.com/ShaysReality/fincalc/cmd/fincalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
