package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/shinyyama/chat-backend/internal/clock"
	"github.com/shinyyama/chat-backend/internal/model"
	"github.com/shinyyama/chat-backend/internal/repository"
	"github.com/shinyyama/chat-backend/internal/storage"
)

// attachmentPrefix is where chat uploads land in the bucket.
const attachmentPrefix = "uploads/chats/assets"

type FileUpload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

type SendMessageInput struct {
	SenderID   uint64
	ReceiverID uint64
	Message    *string
	ReplyTo    *uint64
	File       *FileUpload
}

type ThreadInput struct {
	SenderID   uint64
	ReceiverID uint64
	Page       int
	PerPage    int
	// BasePath is the request path used to build next/prev page links.
	BasePath string
}

type ChatService interface {
	SendMessage(ctx context.Context, in SendMessageInput) (*model.Message, error)
	MarkAsRead(ctx context.Context, messageID uint64) error
	DeleteMessage(ctx context.Context, messageID, senderID uint64) error
	ListConversations(ctx context.Context, userID uint64) ([]model.ChatMessage, error)
	Thread(ctx context.Context, in ThreadInput) ([]model.ChatMessage, PageInfo, error)
	SetBlobStore(bs storage.BlobStore)
}

type chatService struct {
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
	blobs    storage.BlobStore
	clock    clock.Clock
}

func NewChatService(msgRepo repository.MessageRepository, userRepo repository.UserRepository, blobs storage.BlobStore, clk clock.Clock) ChatService {
	return &chatService{msgRepo: msgRepo, userRepo: userRepo, blobs: blobs, clock: clk}
}

func (s *chatService) SetBlobStore(bs storage.BlobStore) {
	s.blobs = bs
}

func (s *chatService) SendMessage(ctx context.Context, in SendMessageInput) (*model.Message, error) {
	if (in.Message == nil || *in.Message == "") && in.File == nil {
		return nil, &FieldError{Field: "message", Message: "A message body or a file is required."}
	}
	for _, ref := range []struct {
		field string
		id    uint64
	}{
		{"sender_id", in.SenderID},
		{"receiver_id", in.ReceiverID},
	} {
		ok, err := s.userRepo.Exists(ctx, ref.id)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", ref.field, err)
		}
		if !ok {
			return nil, invalidReference(ref.field)
		}
	}

	now := s.clock.Now()
	msg := &model.Message{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Message:    in.Message,
		ReplyTo:    in.ReplyTo,
		Status:     model.StatusSent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// The attachment is stored first; a failed upload fails the whole send.
	if in.File != nil {
		if s.blobs == nil {
			return nil, ErrNoBlobStore
		}
		objectPath := fmt.Sprintf("%s/%d_%s", attachmentPrefix, now.Unix(), path.Base(in.File.Name))
		url, err := s.blobs.Upload(ctx, objectPath, in.File.ContentType, in.File.Content)
		if err != nil {
			return nil, fmt.Errorf("store attachment: %w", err)
		}
		msg.FilePath = &url
	}

	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("persist message: %w", err)
	}
	return msg, nil
}

func (s *chatService) MarkAsRead(ctx context.Context, messageID uint64) error {
	ok, err := s.msgRepo.MarkRead(ctx, messageID, s.clock.Now())
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	// An already-read message and a missing one are reported the same way.
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *chatService) DeleteMessage(ctx context.Context, messageID, senderID uint64) error {
	ok, err := s.msgRepo.SoftDelete(ctx, messageID, senderID, s.clock.Now())
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	// Ownership mismatch is reported as not-found as well.
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *chatService) ListConversations(ctx context.Context, userID uint64) ([]model.ChatMessage, error) {
	ok, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user_id: %w", err)
	}
	if !ok {
		return nil, invalidReference("user_id")
	}
	rows, err := s.msgRepo.LatestPerConversation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoConversations
	}
	return rows, nil
}

func (s *chatService) Thread(ctx context.Context, in ThreadInput) ([]model.ChatMessage, PageInfo, error) {
	for _, ref := range []struct {
		field string
		id    uint64
	}{
		{"sender_id", in.SenderID},
		{"receiver_id", in.ReceiverID},
	} {
		ok, err := s.userRepo.Exists(ctx, ref.id)
		if err != nil {
			return nil, PageInfo{}, fmt.Errorf("check %s: %w", ref.field, err)
		}
		if !ok {
			return nil, PageInfo{}, invalidReference(ref.field)
		}
	}

	page := in.Page
	if page <= 0 {
		page = 1
	}
	perPage := in.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	rows, total, err := s.msgRepo.Thread(ctx, in.SenderID, in.ReceiverID, page, perPage)
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("query thread: %w", err)
	}
	if rows == nil {
		rows = []model.ChatMessage{}
	}
	return rows, NewPageInfo(page, perPage, total, len(rows), in.BasePath), nil
}
