package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shinyyama/chat-backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	// MarkRead flips status sent->read; returns false when no live row with
	// status sent matched (missing, deleted, or already read).
	MarkRead(ctx context.Context, id uint64, now time.Time) (bool, error)
	// SoftDelete sets deleted_at, guarded by sender ownership; returns false
	// when no live row owned by senderID matched.
	SoftDelete(ctx context.Context, id, senderID uint64, now time.Time) (bool, error)
	// LatestPerConversation returns, for each unordered participant pair the
	// user is part of, the single highest-id non-deleted message of that
	// pair, newest pair first.
	LatestPerConversation(ctx context.Context, userID uint64) ([]model.ChatMessage, error)
	// Thread returns one page of the non-deleted messages exchanged between
	// the two users (in either direction), ascending by id, plus the total
	// count of qualifying rows.
	Thread(ctx context.Context, userA, userB uint64, page, perPage int) ([]model.ChatMessage, int64, error)
	SetDB(db *gorm.DB)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) MarkRead(ctx context.Context, id uint64, now time.Time) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ? AND status = ?", id, model.StatusSent).
		Updates(map[string]interface{}{"status": model.StatusRead, "updated_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *messageRepository) SoftDelete(ctx context.Context, id, senderID uint64, now time.Time) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	// Model-based update keeps gorm's deleted_at IS NULL scope, so deleting
	// an already-deleted message is a no-op.
	res := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ? AND sender_id = ?", id, senderID).
		Update("deleted_at", now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

const chatColumns = "m.id, m.sender_id, m.receiver_id, m.message, m.file_path, m.reply_to, m.status, m.created_at, m.updated_at, " +
	"sender.name AS sender_name, sender.email AS sender_email, receiver.name AS receiver_name, receiver.email AS receiver_email"

// The pair grouping is symmetric: an A->B and a B->A message fall into the
// same bucket, and the deleted_at filter inside the max lets an older message
// become the latest once the newest is deleted.
const latestPerPairCond = `m.id = (
	SELECT MAX(m2.id) FROM messages m2
	WHERE m2.deleted_at IS NULL
	  AND (m2.sender_id = ? OR m2.receiver_id = ?)
	  AND ((m2.sender_id = m.sender_id AND m2.receiver_id = m.receiver_id)
	    OR (m2.sender_id = m.receiver_id AND m2.receiver_id = m.sender_id)))`

func (r *messageRepository) LatestPerConversation(ctx context.Context, userID uint64) ([]model.ChatMessage, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []model.ChatMessage
	err := r.db.WithContext(ctx).Table("messages AS m").
		Select(chatColumns).
		Joins("JOIN users AS sender ON sender.id = m.sender_id").
		Joins("JOIN users AS receiver ON receiver.id = m.receiver_id").
		Where("m.deleted_at IS NULL").
		Where(latestPerPairCond, userID, userID).
		Order("m.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *messageRepository) Thread(ctx context.Context, userA, userB uint64, page, perPage int) ([]model.ChatMessage, int64, error) {
	if r.db == nil {
		return nil, 0, ErrDBNotReady
	}

	pairCond := "(m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?)"

	var total int64
	if err := r.db.WithContext(ctx).Table("messages AS m").
		Where("m.deleted_at IS NULL").
		Where(pairCond, userA, userB, userB, userA).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.ChatMessage
	err := r.db.WithContext(ctx).Table("messages AS m").
		Select(chatColumns).
		Joins("JOIN users AS sender ON sender.id = m.sender_id").
		Joins("JOIN users AS receiver ON receiver.id = m.receiver_id").
		Where("m.deleted_at IS NULL").
		Where(pairCond, userA, userB, userB, userA).
		Order("m.id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
