package main

import (
	"os"

	"github.com/leapstack-labs/mdschema/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
