package repository

import (
	"context"

	"heritageportal/internal/model"

	"gorm.io/gorm"
)

// MonumentRepository is the storage port for heritage monuments
type MonumentRepository interface {
	Create(ctx context.Context, monument *model.Monument) error
	GetByID(ctx context.Context, id string) (*model.Monument, error)
	List(ctx context.Context, page, limit int) ([]model.Monument, int64, error)
	Update(ctx context.Context, monument *model.Monument) error
}

type monumentRepository struct {
	db *gorm.DB
}

func NewMonumentRepository(db *gorm.DB) MonumentRepository {
	return &monumentRepository{db: db}
}

func (r *monumentRepository) Create(ctx context.Context, monument *model.Monument) error {
	return GetDB(ctx, r.db).Create(monument).Error
}

func (r *monumentRepository) GetByID(ctx context.Context, id string) (*model.Monument, error) {
	var monument model.Monument
	if err := GetDB(ctx, r.db).First(&monument, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &monument, nil
}

func (r *monumentRepository) List(ctx context.Context, page, limit int) ([]model.Monument, int64, error) {
	var monuments []model.Monument
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Monument{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name asc").Offset(offset).Limit(limit).Find(&monuments).Error; err != nil {
		return nil, 0, err
	}

	return monuments, total, nil
}

func (r *monumentRepository) Update(ctx context.Context, monument *model.Monument) error {
	return GetDB(ctx, r.db).Save(monument).Error
}
