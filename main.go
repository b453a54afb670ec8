package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"blog/service"
)

const cliVersion = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run dispatches top-level commands; everything but version goes to the service package.
func run(args []string, out io.Writer) int {
	if len(args) < 1 {
		return service.HandleCommand(nil)
	}

	switch strings.ToLower(args[0]) {
	case "version", "--version", "-v":
		fmt.Fprintf(out, "blog version %s\n", cliVersion)
		return 0
	default:
		return service.HandleCommand(args)
	}
}
