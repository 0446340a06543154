package main

import (
	"github.com/bnema/toolshed/cmd"
	"github.com/bnema/toolshed/pkg/version"
)

var (
	buildVersion = "dev"
	commit       = "unknown"
	date         = "unknown"
)

func main() {
	version.Set(buildVersion, commit, date)
	cmd.Execute()
}
