package main

import (
	"fmt"
	"os"

	"github.com/noah-isme/plant-shift-api/internal/cli"
)

func main() {
	if err := cli.BuildCLI(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
