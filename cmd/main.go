package main

import (
	"github.com/Thevenin-Jonathan/Health-Food-sub000/config"
	"github.com/Thevenin-Jonathan/Health-Food-sub000/routes"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg)

	db, err := config.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	r := routes.SetupRouter(db, log)
	log.WithField("addr", cfg.Addr).Info("health-food core listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
