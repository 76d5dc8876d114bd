package main

import (
	"context"
	"log"

	"github.com/omegalab/omegaboard/internal/cli"
	"github.com/omegalab/omegaboard/internal/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("startup error: %s", err.Error())
	}

	app.Run(ctx)
}
