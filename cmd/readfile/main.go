// Command readfile reads columns from delimited text tables.
package main

import (
	"os"

	"github.com/oleg578/readfile/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
