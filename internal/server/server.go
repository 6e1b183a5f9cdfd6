package server

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/chat-backend/internal/clock"
	"github.com/shinyyama/chat-backend/internal/handler"
	appmw "github.com/shinyyama/chat-backend/internal/middleware"
	"github.com/shinyyama/chat-backend/internal/repository"
	"github.com/shinyyama/chat-backend/internal/service"
	"github.com/shinyyama/chat-backend/internal/storage"
	"gorm.io/gorm"
)

type Server struct {
	e        *echo.Echo
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
	chatSvc  service.ChatService
}

// New builds the HTTP server. db and the blob store may be nil at startup and
// injected later via SetDB/SetBlobStore; firebaseProjectID empty disables
// bearer auth.
func New(db *gorm.DB, blobs storage.BlobStore, firebaseProjectID string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	msgRepo := repository.NewMessageRepository(db)
	userRepo := repository.NewUserRepository(db)
	chatSvc := service.NewChatService(msgRepo, userRepo, blobs, clock.System())
	chatHandler := handler.NewChatHandler(chatSvc)

	var authMw *appmw.AuthMiddleware
	if firebaseProjectID != "" {
		mw, err := appmw.NewAuthMiddleware(context.Background(), firebaseProjectID)
		if err != nil {
			log.Printf("firebase auth init failed, serving without auth: %v", err)
		} else {
			authMw = mw
		}
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api/v1")
	if authMw != nil {
		api.Use(authMw.RequireAuth)
	}
	api.POST("/send-message", chatHandler.SendMessage)
	api.POST("/mark-as-read", chatHandler.MarkAsRead)
	api.POST("/delete-message", chatHandler.DeleteMessage)
	api.POST("/get-particular-user-chat", chatHandler.GetAllChatMessages)
	api.POST("/get-inner-chats", chatHandler.GetInnerChat)

	return &Server{e: e, msgRepo: msgRepo, userRepo: userRepo, chatSvc: chatSvc}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) SetDB(db *gorm.DB) {
	s.msgRepo.SetDB(db)
	s.userRepo.SetDB(db)
}

func (s *Server) SetBlobStore(bs storage.BlobStore) {
	s.chatSvc.SetBlobStore(bs)
}
