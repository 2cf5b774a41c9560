// Command wellnest runs the wellnest API and its maintenance commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/terraincognita07/wellnest/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
