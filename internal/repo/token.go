package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Ovsyanko/farm_market/internal/models"
)

type TokenRepo struct {
	DB *gorm.DB
}

func (r *TokenRepo) Save(ctx context.Context, token string, userID uint, jti string, expiresAt time.Time) error {
	rec := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		JTI:       jti,
		ExpiresAt: expiresAt.Unix(),
		Revoked:   false,
	}
	return r.DB.WithContext(ctx).Create(&rec).Error
}

func (r *TokenRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &stored, nil
}

func (r *TokenRepo) Revoke(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("revoked", true).Error
}
