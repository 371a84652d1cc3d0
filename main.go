// Package main is the entry point for the malfix application.
package main

import (
	"github.com/malfix-cli/malfix/cmd"
	"github.com/malfix-cli/malfix/config"
	"github.com/malfix-cli/malfix/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
