// Command uat builds and queries usenet archive lexicons (SPEC_FULL.md's
// CLI surface, styled after the teacher's cmd/lci entry point).
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/wolfpld/usenetarchive-sub002/internal/debug"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "uat",
		Usage:   "lexicon builder and search engine for usenet archives",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a .uat.kdl config file (not read: build and search load .uat.kdl from the archive directory)",
				Value: ".uat.kdl",
			},
		},
		Commands: []*cli.Command{
			buildCommand,
			searchCommand,
			statsCommand,
			trainCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		debug.Log("CLI", "fatal: %v", err)
		fmt.Fprintln(os.Stderr, "uat:", err)
		os.Exit(1)
	}
}
