package main

import (
	"os"

	"github.com/Diaa1123/amz-qoder/cmd/qoder/commands"
)

// main is the entry point for the qoder CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
