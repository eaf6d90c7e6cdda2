// Package main is the entry point for the cleanplan CLI.
package main

import (
	"os"

	"github.com/shopspring/decimal"

	"cleanplan/cmd/cli/cmd"
)

func main() {
	// --format json prints amounts as numbers, matching the API
	decimal.MarshalJSONWithoutQuotes = true

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
