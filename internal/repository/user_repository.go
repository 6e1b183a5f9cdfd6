package repository

import (
	"context"

	"github.com/shinyyama/chat-backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Exists(ctx context.Context, id uint64) (bool, error)
	SetDB(db *gorm.DB)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *userRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
