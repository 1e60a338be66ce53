package repository

import (
	"context"

	"heritageportal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectRepository is the storage port for projects. GetForUpdate takes
// a row lock so concurrent transition attempts on the same project are
// serialized inside the surrounding transaction.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	GetForUpdate(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, page, limit int) ([]model.Project, int64, error)
	ListByContractor(ctx context.Context, contractorID string) ([]model.Project, error)
	ListByMonument(ctx context.Context, monumentID string) ([]model.Project, error)
	ListAssignedTo(ctx context.Context, workerID string) ([]model.Project, error)
	Save(ctx context.Context, project *model.Project) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return GetDB(ctx, r.db).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := GetDB(ctx, r.db).Preload("Milestones").First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetForUpdate(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, page, limit int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Milestones").Order("created_at desc").Offset(offset).Limit(limit).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *projectRepository) ListByContractor(ctx context.Context, contractorID string) ([]model.Project, error) {
	var projects []model.Project
	if err := GetDB(ctx, r.db).Preload("Milestones").
		Where("contractor_id = ?", contractorID).
		Order("created_at desc").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) ListByMonument(ctx context.Context, monumentID string) ([]model.Project, error) {
	var projects []model.Project
	if err := GetDB(ctx, r.db).Preload("Milestones").
		Where("monument_id = ?", monumentID).
		Order("created_at desc").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListAssignedTo matches the denormalized worker references stored on the
// project row (jsonb array of {id, name, mobile}).
func (r *projectRepository) ListAssignedTo(ctx context.Context, workerID string) ([]model.Project, error) {
	var projects []model.Project
	if err := GetDB(ctx, r.db).Preload("Milestones").
		Where("workers @> ?", `[{"id":"`+workerID+`"}]`).
		Order("created_at desc").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Save(ctx context.Context, project *model.Project) error {
	return GetDB(ctx, r.db).Omit("Milestones").Save(project).Error
}
