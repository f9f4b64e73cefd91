package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ovsyanko/farm_market/internal/models"
)

func TestCreateCrop(t *testing.T) {
	r := &CropRepo{DB: initTestDB(t)}
	ctx := context.Background()

	crop, err := r.Create(ctx, 1, "Wheat", "50kg", 20.5)
	require.NoError(t, err)
	require.NotZero(t, crop.ID)
	require.EqualValues(t, 1, crop.FarmerID)
}

func TestCreateCrop_InvalidInput(t *testing.T) {
	r := &CropRepo{DB: initTestDB(t)}
	ctx := context.Background()

	_, err := r.Create(ctx, 1, "", "50kg", 20.5)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.Create(ctx, 1, "Wheat", "", 20.5)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.Create(ctx, 1, "Wheat", "50kg", -1)
	require.ErrorIs(t, err, ErrInvalidInput)

	var count int64
	r.DB.Model(&models.Crop{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestListAllCrops_InsertionOrder(t *testing.T) {
	r := &CropRepo{DB: initTestDB(t)}
	ctx := context.Background()

	for _, name := range []string{"Wheat", "Rice", "Maize"} {
		_, err := r.Create(ctx, 1, name, "10kg", 5)
		require.NoError(t, err)
	}

	crops, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, crops, 3)
	require.Equal(t, "Wheat", crops[0].Name)
	require.Equal(t, "Rice", crops[1].Name)
	require.Equal(t, "Maize", crops[2].Name)
}

func TestListPage(t *testing.T) {
	r := &CropRepo{DB: initTestDB(t)}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := r.Create(ctx, 1, "Wheat", "10kg", 5)
		require.NoError(t, err)
	}

	total, crops, err := r.ListPage(ctx, 2, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, crops, 2)
	require.EqualValues(t, 3, crops[0].ID)
}
