package main

import (
	"fmt"
	"os"

	"company-portal/internal/cli"
	"company-portal/internal/config"
)

func main() {
	root := cli.NewRootCommand(config.NewLoader(), newPortal, os.Stdout)

	err := root.Execute()
	if closeErr := root.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
