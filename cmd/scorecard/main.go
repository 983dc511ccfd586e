// Package main is the scorecard command-line entrypoint.
package main

import "github.com/okian/arcadeboard/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
