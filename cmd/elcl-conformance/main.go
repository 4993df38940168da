package main

import (
	"os"

	"github.com/erbsland-dev/elcl-conformance/internal/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(cmd.Execute(version, commit, date))
}
