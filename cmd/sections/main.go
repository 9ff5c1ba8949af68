package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-sections/cmd/sections/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
