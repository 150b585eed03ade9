package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogapi/cmd/app"
	"blogapi/internal/config"
	handlers "blogapi/internal/handler"
	"blogapi/internal/server"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, services := app.App(cfg)
	defer func() {
		if err := db.CloseDB(); err != nil {
			log.Printf("close database: %v", err)
		}
	}()

	h := handlers.NewHandlers(services, db, cfg)
	srv := server.New(cfg, h, services.Auth)

	go func() {
		log.Printf("blog API listening on %s (database %s)", srv.Addr(), cfg.DB.DbNAME)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
	log.Println("server stopped")
}
