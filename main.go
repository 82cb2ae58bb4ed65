package main

import (
	"os"

	"github.com/adalundhe/sketch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
