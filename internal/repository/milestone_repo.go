package repository

import (
	"context"

	"heritageportal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MilestoneRepository is the storage port for milestones.
type MilestoneRepository interface {
	Create(ctx context.Context, milestone *model.Milestone) error
	Get(ctx context.Context, projectID, id string) (*model.Milestone, error)
	GetForUpdate(ctx context.Context, projectID, id string) (*model.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Milestone, error)
	Save(ctx context.Context, milestone *model.Milestone) error
}

type milestoneRepository struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) Create(ctx context.Context, milestone *model.Milestone) error {
	return GetDB(ctx, r.db).Create(milestone).Error
}

func (r *milestoneRepository) Get(ctx context.Context, projectID, id string) (*model.Milestone, error) {
	var milestone model.Milestone
	if err := GetDB(ctx, r.db).
		First(&milestone, "id = ? AND project_id = ?", id, projectID).Error; err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (r *milestoneRepository) GetForUpdate(ctx context.Context, projectID, id string) (*model.Milestone, error) {
	var milestone model.Milestone
	if err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&milestone, "id = ? AND project_id = ?", id, projectID).Error; err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (r *milestoneRepository) ListByProject(ctx context.Context, projectID string) ([]model.Milestone, error) {
	var milestones []model.Milestone
	if err := GetDB(ctx, r.db).
		Where("project_id = ?", projectID).
		Order("timeline_start asc, created_at asc").
		Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

func (r *milestoneRepository) Save(ctx context.Context, milestone *model.Milestone) error {
	return GetDB(ctx, r.db).Save(milestone).Error
}
