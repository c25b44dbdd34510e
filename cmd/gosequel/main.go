// Command gosequel renders and runs SQL datasets.
//
// Commands:
//   - sql: render one SELECT described by flags
//   - repl: build a dataset interactively and run it against a database
//   - config show: print the effective configuration
//
// Configuration is read from gosequel.yaml (discovered by walking up from
// the working directory), then GOSEQUEL_* environment variables, then flags.
//
// Usage:
//
//	gosequel sql --from items --where "price > 10" --order name --limit 5
//	gosequel --dialect sqlite --db ./app.db repl
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
