package app

import (
	"log"

	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/repository"
	"blogapi/internal/service"
	"blogapi/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("init object storage: %v", err)
	}

	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient)

	return db, services
}
