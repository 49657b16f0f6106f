// Command rcleaner reclaims disk space on Linux:
// go install github.com/RiPetitor/rCleaner/cmd/rcleaner@latest
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/RiPetitor/rCleaner/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := cli.NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
