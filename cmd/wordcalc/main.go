// Command wordcalc evaluates arithmetic requests written in words.
//
// Usage:
//
//	wordcalc compute двадцать три умножить на два
//	wordcalc repl
//	wordcalc history [--clear]
//	wordcalc serve
//	wordcalc mcp
package main

import (
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
