package main

import (
	"log"
	"os"

	"github.com/pacifichome/smarthome-admin/internal/auth"
	"github.com/pacifichome/smarthome-admin/internal/config"
	"github.com/pacifichome/smarthome-admin/internal/database"
	"github.com/pacifichome/smarthome-admin/internal/handlers"
	"github.com/pacifichome/smarthome-admin/internal/routes"
	"github.com/pacifichome/smarthome-admin/internal/store"
	"github.com/pacifichome/smarthome-admin/internal/uploads"
)

func main() {
	cfg := config.Load()

	if len(os.Args) > 1 {
		runCLI(cfg, os.Args)
		return
	}

	db, err := database.OpenDB(cfg)
	if err != nil {
		log.Fatalf("could not connect to the database: %v", err)
	}
	defer db.Close()

	images, err := uploads.NewStore(cfg.ImageDir)
	if err != nil {
		log.Fatalf("could not prepare image directory: %v", err)
	}
	videos, err := uploads.NewStore(cfg.VideoDir)
	if err != nil {
		log.Fatalf("could not prepare video directory: %v", err)
	}

	h := handlers.New(store.New(db), images, videos, auth.NewManager(cfg.JWTSecret), cfg)
	router := routes.SetupRouter(h)

	log.Printf("starting server on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
