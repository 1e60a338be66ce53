package service

import (
	"context"
	"fmt"

	"heritageportal/internal/model"
	"heritageportal/internal/repository"
	"heritageportal/internal/workflow"
)

type CreateMonumentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	State       string `json:"state"`
	Era         string `json:"era"`
}

type UpdateMonumentRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	State       *string `json:"state"`
	Era         *string `json:"era"`
}

type MonumentService interface {
	CreateMonument(ctx context.Context, userID string, req CreateMonumentRequest) (*model.Monument, error)
	GetMonument(ctx context.Context, id string) (*model.Monument, error)
	ListMonuments(ctx context.Context, page, limit int) ([]model.Monument, int64, error)
	UpdateMonument(ctx context.Context, userID, id string, req UpdateMonumentRequest) (*model.Monument, error)
}

type monumentService struct {
	monumentRepo repository.MonumentRepository
	userRepo     repository.UserRepository
}

func NewMonumentService(monumentRepo repository.MonumentRepository, userRepo repository.UserRepository) MonumentService {
	return &monumentService{monumentRepo: monumentRepo, userRepo: userRepo}
}

func (s *monumentService) CreateMonument(ctx context.Context, userID string, req CreateMonumentRequest) (*model.Monument, error) {
	actor, err := resolveActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleSuperAdmin {
		return nil, workflow.ErrForbidden
	}

	monument := model.Monument{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		State:       req.State,
		Era:         req.Era,
	}
	if err := s.monumentRepo.Create(ctx, &monument); err != nil {
		return nil, fmt.Errorf("failed to create monument: %w", err)
	}
	return &monument, nil
}

func (s *monumentService) GetMonument(ctx context.Context, id string) (*model.Monument, error) {
	monument, err := s.monumentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("monument not found: %w", err)
	}
	return monument, nil
}

func (s *monumentService) ListMonuments(ctx context.Context, page, limit int) ([]model.Monument, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.monumentRepo.List(ctx, page, limit)
}

func (s *monumentService) UpdateMonument(ctx context.Context, userID, id string, req UpdateMonumentRequest) (*model.Monument, error) {
	actor, err := resolveActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleSuperAdmin {
		return nil, workflow.ErrForbidden
	}

	monument, err := s.monumentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("monument not found: %w", err)
	}

	if req.Name != "" {
		monument.Name = req.Name
	}
	if req.Description != nil {
		monument.Description = *req.Description
	}
	if req.Location != nil {
		monument.Location = *req.Location
	}
	if req.State != nil {
		monument.State = *req.State
	}
	if req.Era != nil {
		monument.Era = *req.Era
	}

	if err := s.monumentRepo.Update(ctx, monument); err != nil {
		return nil, fmt.Errorf("failed to update monument: %w", err)
	}
	return monument, nil
}
