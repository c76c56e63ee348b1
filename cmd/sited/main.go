package main

import (
	"context"
	"log"

	"github.com/caarlos0/env/v11"

	"github.com/brightforge/site"
)

func main() {
	var cfg site.Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse config: %v", err)
	}

	app := site.New(cfg)
	defer app.Close(context.Background())

	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}
}
