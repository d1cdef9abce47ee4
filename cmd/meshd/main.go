package main

import (
	"log"

	"github.com/mantle3d/mantle/internal/meshd/app"
	"github.com/mantle3d/mantle/internal/meshd/config"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalln("failed to load config:", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalln("application error:", err)
	}
}
