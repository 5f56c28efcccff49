package forum

import (
	"context"

	"gorm.io/gorm"
)

// Repository handles forum message persistence
type Repository interface {
	List(ctx context.Context) ([]Message, error)
	Create(ctx context.Context, msg *Message) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed forum repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context) ([]Message, error) {
	var messages []Message
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *gormRepository) Create(ctx context.Context, msg *Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}
