// Package main provides the entry point for the inverted_index CLI.
package main

import (
	"os"

	"github.com/gcbaptista/inverted-index/cmd/inverted_index/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
