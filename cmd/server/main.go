// Command server runs the carsapi HTTP service.
//
// Settings are read from the environment, an optional .env file, an optional
// JSON file (-c) and flags, in that order of precedence.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/carsapi/internal/server"
	"github.com/dmitrijs2005/carsapi/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("carsapi: %v", err)
	}

	app.Run(context.Background())
}
