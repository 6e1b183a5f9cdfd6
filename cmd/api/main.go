package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shinyyama/chat-backend/internal/config"
	"github.com/shinyyama/chat-backend/internal/db"
	"github.com/shinyyama/chat-backend/internal/model"
	"github.com/shinyyama/chat-backend/internal/server"
	"github.com/shinyyama/chat-backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	srv := server.New(nil, nil, os.Getenv("FIREBASE_PROJECT_ID"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// DB and blob store come up in the background so health checks pass while
	// Cloud SQL is still connecting; repositories guard until injected.
	go func() {
		cfg, err := config.Load()
		if err != nil {
			log.Printf("config load error: %v", err)
			return
		}
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		srv.SetDB(conn)
		if err := conn.AutoMigrate(&model.User{}, &model.Message{}); err != nil {
			log.Printf("auto migrate error: %v", err)
		}

		if cfg.StorageBucket != "" {
			bs, err := storage.NewGCSStore(context.Background(), cfg.StorageBucket)
			if err != nil {
				log.Printf("storage init error: %v", err)
				return
			}
			srv.SetBlobStore(bs)
		} else {
			log.Printf("STORAGE_BUCKET not set; file attachments disabled")
		}
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
