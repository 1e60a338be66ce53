package service

import (
	"context"
	"fmt"
	"time"

	"heritageportal/internal/changetrack"
	"heritageportal/internal/model"
	"heritageportal/internal/repository"
	ws "heritageportal/internal/websocket"
	"heritageportal/internal/workflow"
)

// --- DTOs ---

type TimelineDTO struct {
	Start                  time.Time `json:"start" binding:"required"`
	End                    time.Time `json:"end" binding:"required"`
	ExpectedDurationMonths int       `json:"expected_duration_months"`
}

type CreateProjectRequest struct {
	MonumentID   string            `json:"monument_id" binding:"required"`
	ContractorID string            `json:"contractor_id" binding:"required"`
	Name         string            `json:"name" binding:"required"`
	Description  string            `json:"description"`
	Budget       int64             `json:"budget" binding:"required,gte=0"`
	Priority     string            `json:"priority" binding:"required,oneof=low medium high urgent"`
	Timeline     TimelineDTO       `json:"timeline" binding:"required"`
	Workers      []model.WorkerRef `json:"workers"`
}

type UpdateProjectRequest struct {
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	Budget      *int64             `json:"budget" binding:"omitempty,gte=0"`
	Priority    string             `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Timeline    *TimelineDTO       `json:"timeline"`
	Workers     *[]model.WorkerRef `json:"workers"`
}

type SetProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// --- Interface ---

type ProjectService interface {
	CreateProject(ctx context.Context, userID string, req CreateProjectRequest) (*model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context, page, limit int) ([]model.Project, int64, error)
	ListContractorProjects(ctx context.Context, contractorID string) ([]model.Project, error)
	UpdateProject(ctx context.Context, userID, id string, req UpdateProjectRequest) (*model.Project, error)
	Transition(ctx context.Context, userID, id string, event workflow.Event) (*model.Project, error)
	SetProgress(ctx context.Context, userID, id string, progress int) (*model.Project, error)
	GetEditHistory(ctx context.Context, id string) (model.AuditHistory, error)
}

type projectService struct {
	projectRepo  repository.ProjectRepository
	monumentRepo repository.MonumentRepository
	userRepo     repository.UserRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	monumentRepo repository.MonumentRepository,
	userRepo repository.UserRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		monumentRepo: monumentRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Implementation ---

func (s *projectService) CreateProject(ctx context.Context, userID string, req CreateProjectRequest) (*model.Project, error) {
	actor, err := resolveActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleSuperAdmin {
		return nil, workflow.ErrForbidden
	}

	contractor, err := s.userRepo.GetByID(ctx, req.ContractorID)
	if err != nil {
		return nil, fmt.Errorf("contractor not found: %w", err)
	}
	if contractor.Role != model.RoleContractor {
		return nil, fmt.Errorf("user %s is not a contractor", contractor.ID)
	}

	monument, err := s.monumentRepo.GetByID(ctx, req.MonumentID)
	if err != nil {
		return nil, fmt.Errorf("monument not found: %w", err)
	}

	if req.Timeline.End.Before(req.Timeline.Start) {
		return nil, fmt.Errorf("timeline end must not precede start")
	}

	project := model.Project{
		MonumentID:   monument.ID,
		ContractorID: contractor.ID,
		Name:         req.Name,
		Description:  req.Description,
		Budget:       req.Budget,
		Priority:     req.Priority,
		Status:       model.ProjectScheduled,
		Workers:      req.Workers,
		Timeline: model.Timeline{
			Start:                  req.Timeline.Start,
			End:                    req.Timeline.End,
			ExpectedDurationMonths: req.Timeline.ExpectedDurationMonths,
		},
		EditHistory: model.AuditHistory{},
	}

	if err := s.projectRepo.Create(ctx, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	notify(s.hub, "project_created", map[string]interface{}{
		"project_id": project.ID.String(),
		"name":       project.Name,
	})

	return &project, nil
}

func (s *projectService) GetProject(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, page, limit int) ([]model.Project, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.projectRepo.List(ctx, page, limit)
}

func (s *projectService) ListContractorProjects(ctx context.Context, contractorID string) ([]model.Project, error) {
	return s.projectRepo.ListByContractor(ctx, contractorID)
}

func (s *projectService) UpdateProject(ctx context.Context, userID, id string, req UpdateProjectRequest) (*model.Project, error) {
	actor, err := resolveActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !workflow.Allowed(workflow.OpProjectEdit, actor.Role) {
		return nil, workflow.ErrForbidden
	}

	var updated *model.Project
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		project, loadErr := s.projectRepo.GetForUpdate(txCtx, id)
		if loadErr != nil {
			return fmt.Errorf("project not found: %w", loadErr)
		}

		snapshot := *project
		if req.Name != "" {
			project.Name = req.Name
		}
		if req.Description != nil {
			project.Description = *req.Description
		}
		if req.Budget != nil {
			project.Budget = *req.Budget
		}
		if req.Priority != "" {
			project.Priority = req.Priority
		}
		if req.Timeline != nil {
			if req.Timeline.End.Before(req.Timeline.Start) {
				return fmt.Errorf("timeline end must not precede start")
			}
			project.Timeline = model.Timeline{
				Start:                  req.Timeline.Start,
				End:                    req.Timeline.End,
				ExpectedDurationMonths: req.Timeline.ExpectedDurationMonths,
			}
		}
		if req.Workers != nil {
			project.Workers = *req.Workers
		}

		changes := changetrack.ProjectDiff(snapshot, *project)
		if len(changes) == 0 {
			updated = project
			return nil
		}

		project.EditHistory = changetrack.Record(project.EditHistory, changes, actor, time.Now())
		if saveErr := s.projectRepo.Save(txCtx, project); saveErr != nil {
			return fmt.Errorf("failed to save project: %w", saveErr)
		}
		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *projectService) Transition(ctx context.Context, userID, id string, event workflow.Event) (*model.Project, error) {
	actor, err := resolveActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	var updated *model.Project
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		project, loadErr := s.projectRepo.GetForUpdate(txCtx, id)
		if loadErr != nil {
			return fmt.Errorf("project not found: %w", loadErr)
		}

		next, applyErr := workflow.ApplyProjectEvent(*project, event, actor, time.Now())
		if applyErr != nil {
			return applyErr
		}

		if saveErr := s.projectRepo.Save(txCtx, &next); saveErr != nil {
			return fmt.Errorf("failed to save project: %w", saveErr)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	notify(s.hub, "project_status_changed", map[string]interface{}{
		"project_id": updated.ID.String(),
		"status":     updated.Status,
		"by":         actor.Name,
	})

	return updated, nil
}

func (s *projectService) SetProgress(ctx context.Context, userID, id string, progress int) (*model.Project, error) {
	actor, err := resolveActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	var updated *model.Project
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		project, loadErr := s.projectRepo.GetForUpdate(txCtx, id)
		if loadErr != nil {
			return fmt.Errorf("project not found: %w", loadErr)
		}

		next, applyErr := workflow.SetProgress(*project, progress, actor, time.Now())
		if applyErr != nil {
			return applyErr
		}

		if saveErr := s.projectRepo.Save(txCtx, &next); saveErr != nil {
			return fmt.Errorf("failed to save project: %w", saveErr)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *projectService) GetEditHistory(ctx context.Context, id string) (model.AuditHistory, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	// Stored newest-first; returned as-is
	return project.EditHistory, nil
}
