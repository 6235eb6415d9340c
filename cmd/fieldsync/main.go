// Package main provides the fieldsync CLI, the technician's interface to the
// local reading mirror and the collection unit backend.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
