package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ovsyanko/farm_market/internal/models"
)

type ForumRepo struct {
	DB *gorm.DB
}

func (r *ForumRepo) Create(ctx context.Context, userID uint, title, content string) (*models.ForumPost, error) {
	if title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	post := models.ForumPost{
		Title:   title,
		Content: content,
		UserID:  userID,
	}
	if err := r.DB.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *ForumRepo) ListAll(ctx context.Context) ([]models.ForumPost, error) {
	var posts []models.ForumPost
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
