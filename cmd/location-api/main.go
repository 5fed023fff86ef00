// Package main is the entry point for the catalog location API server.
package main

import (
	"os"

	"github.com/swcatalog/location-server/cmd/location-api/app"
	"github.com/swcatalog/location-server/pkg/logger"
)

func main() {
	logger.Initialize()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
