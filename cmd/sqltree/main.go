// Package main provides the sqltree command.
package main

import (
	"os"

	"github.com/leapstack-labs/sqltree/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
