// Package main is the entry point for the seqfile command.
package main

import (
	"os"

	"github.com/joe/seqfile/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
