// Package main provides the soldoc command line tool.
package main

import (
	"os"

	"github.com/alecnunn/soldoc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
