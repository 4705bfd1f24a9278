// Command sqltpl renders a query template with arguments read from a YAML
// file and prints the resulting SQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func main() {
	cfg := config{}

	flag.StringVar(&cfg.Template, "template", "", "Query template (default: read from stdin)")
	flag.StringVar(&cfg.ArgsFile, "args", "", "Path to a YAML file holding the list of arguments")
	flag.StringVar(&cfg.Quotes, "quotes", "", "Quote style, backslash or doubled (default: doubled for sqlite3, backslash otherwise)")
	flag.StringVar(&cfg.Driver, "driver", "", "Database used to escape strings: sqlite3 or mysql (default: built-in escaping)")
	flag.StringVar(&cfg.DSN, "dsn", "", "Data source name for -driver")
	flag.BoolVar(&cfg.Verbose, "v", false, "Log debug records to stderr")
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected arguments %q\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
