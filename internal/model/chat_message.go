package model

import "time"

// ChatMessage is a read-side row: a message joined with the display fields of
// both participants.
type ChatMessage struct {
	ID            uint64    `gorm:"column:id" json:"id"`
	SenderID      uint64    `gorm:"column:sender_id" json:"sender_id"`
	ReceiverID    uint64    `gorm:"column:receiver_id" json:"receiver_id"`
	Message       *string   `gorm:"column:message" json:"message"`
	FilePath      *string   `gorm:"column:file_path" json:"file_path"`
	ReplyTo       *uint64   `gorm:"column:reply_to" json:"reply_to"`
	Status        string    `gorm:"column:status" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
	SenderName    string    `gorm:"column:sender_name" json:"sender_name"`
	SenderEmail   string    `gorm:"column:sender_email" json:"sender_email"`
	ReceiverName  string    `gorm:"column:receiver_name" json:"receiver_name"`
	ReceiverEmail string    `gorm:"column:receiver_email" json:"receiver_email"`
}
