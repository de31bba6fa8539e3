// Command abexp inspects and edits A/B cohort assignment for this machine.
//
// Usage:
//
//	abexp --config abexp.yaml status
//	abexp --config abexp.yaml describe --json
//	abexp --config abexp.yaml override set dark-mode true
//	abexp --config abexp.yaml collect
package main

import (
	"fmt"
	"os"
)

// Exit codes.
const (
	exitSuccess = 0
	exitError   = 1
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}
