package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Ovsyanko/farm_market/internal/hash"
	"github.com/Ovsyanko/farm_market/internal/models"
)

type UserRepo struct {
	DB *gorm.DB
}

// Create registers a new account. The raw password never reaches the
// database, only its bcrypt hash.
func (r *UserRepo) Create(ctx context.Context, username, email, password, role string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if role != models.RoleFarmer && role != models.RoleBuyer {
		return nil, ErrInvalidInput
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
	}

	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ? OR email = ?", username, email).First(&existing).Error
		if err == nil {
			return ErrDuplicateIdentity
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&user).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	return &user, nil
}

// FindByCredentials resolves an email/password pair to a user. Email
// comparison is exact, no normalization.
func (r *UserRepo) FindByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
