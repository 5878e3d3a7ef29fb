// Command create-project scaffolds a new Vue.js project. Any error exits
// with status 1.
package main

import (
	"fmt"
	"os"

	"github.com/kaywahmatch/create-project/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
