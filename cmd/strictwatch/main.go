package main

import (
	"os"

	"github.com/crimson-sun/strictwatch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
