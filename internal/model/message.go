package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusSent = "sent"
	StatusRead = "read"
)

// Message is a directed message between two users. The auto-increment id is
// the canonical chronological order; soft-deleted rows stay in the table but
// must never surface in reads.
type Message struct {
	ID         uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   uint64         `gorm:"column:sender_id;index;not null" json:"sender_id"`
	ReceiverID uint64         `gorm:"column:receiver_id;index;not null" json:"receiver_id"`
	Message    *string        `gorm:"type:text" json:"message"`
	FilePath   *string        `gorm:"size:512" json:"file_path"`
	ReplyTo    *uint64        `gorm:"column:reply_to" json:"reply_to"`
	Status     string         `gorm:"size:16;not null;default:sent" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
