// Package main is the entry point for the playman application.
package main

import (
	"github.com/playman-cli/playman/cmd"
	"github.com/playman-cli/playman/config"
	"github.com/playman-cli/playman/internal/cache"
	"github.com/playman-cli/playman/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background pruning of expired feed documents.
	go cache.CollectGarbage()

	cmd.Execute()
}
