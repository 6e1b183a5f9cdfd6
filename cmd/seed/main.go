package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
	"github.com/shinyyama/chat-backend/internal/config"
	"github.com/shinyyama/chat-backend/internal/db"
	"github.com/shinyyama/chat-backend/internal/model"
	"gorm.io/gorm"
)

const (
	seedUsers            = 8
	seedMessagesPerPair  = 12
	seedConversationFrac = 2 // every user chats with roughly half the others
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()
	gofakeit.Seed(time.Now().UnixNano())

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.User{}, &model.Message{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var existing int64
	if err := gdb.Model(&model.Message{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("count messages: %w", err)
	}
	if existing > 0 && os.Getenv("FORCE_SEED") != "true" {
		log.Printf("messages already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	users, err := seedUserRows(gdb)
	if err != nil {
		return err
	}
	total, err := seedMessageRows(gdb, users)
	if err != nil {
		return err
	}

	log.Printf("seeded %d users and %d messages", len(users), total)
	return nil
}

func seedUserRows(gdb *gorm.DB) ([]model.User, error) {
	users := make([]model.User, 0, seedUsers)
	for i := 0; i < seedUsers; i++ {
		users = append(users, model.User{
			Name:  gofakeit.Name(),
			Email: gofakeit.Email(),
		})
	}
	if err := gdb.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("create users: %w", err)
	}
	return users, nil
}

func seedMessageRows(gdb *gorm.DB, users []model.User) (int, error) {
	total := 0
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			if rand.Intn(seedConversationFrac) != 0 {
				continue
			}
			var lastID *uint64
			for k := 0; k < seedMessagesPerPair; k++ {
				sender, receiver := users[i], users[j]
				if k%2 == 1 {
					sender, receiver = receiver, sender
				}
				body := gofakeit.Sentence(rand.Intn(10) + 3)
				msg := model.Message{
					SenderID:   sender.ID,
					ReceiverID: receiver.ID,
					Message:    &body,
					Status:     model.StatusSent,
				}
				if lastID != nil && rand.Intn(4) == 0 {
					msg.ReplyTo = lastID
				}
				if rand.Intn(3) != 0 {
					msg.Status = model.StatusRead
				}
				if err := gdb.Create(&msg).Error; err != nil {
					return total, fmt.Errorf("create message: %w", err)
				}
				id := msg.ID
				lastID = &id
				total++
			}
		}
	}
	return total, nil
}
