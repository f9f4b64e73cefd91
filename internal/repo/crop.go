package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ovsyanko/farm_market/internal/models"
)

type CropRepo struct {
	DB *gorm.DB
}

func (r *CropRepo) Create(ctx context.Context, farmerID uint, name, quantity string, price float64) (*models.Crop, error) {
	if name == "" || quantity == "" || price < 0 {
		return nil, ErrInvalidInput
	}

	crop := models.Crop{
		Name:     name,
		Quantity: quantity,
		Price:    price,
		FarmerID: farmerID,
	}
	if err := r.DB.WithContext(ctx).Create(&crop).Error; err != nil {
		return nil, err
	}
	return &crop, nil
}

// ListAll returns every listing in insertion order, visible to any
// authenticated caller regardless of role.
func (r *CropRepo) ListAll(ctx context.Context) ([]models.Crop, error) {
	var crops []models.Crop
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&crops).Error; err != nil {
		return nil, err
	}
	return crops, nil
}

func (r *CropRepo) ListPage(ctx context.Context, offset, limit int) (int64, []models.Crop, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Crop{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var crops []models.Crop
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&crops).Error; err != nil {
		return 0, nil, err
	}
	return total, crops, nil
}
