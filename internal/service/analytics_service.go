package service

import (
	"context"
	"fmt"
	"time"

	"heritageportal/internal/analytics"
	"heritageportal/internal/model"
	"heritageportal/internal/repository"

	"github.com/google/uuid"
)

// AnalyticsService assembles read-only snapshots and hands them to the
// analytics engine. It never mutates state.
type AnalyticsService interface {
	ProjectAnalytics(ctx context.Context, projectID string) (*model.ProjectAnalytics, error)
	ContractorStats(ctx context.Context, contractorID string) (*model.ContractorStats, error)
	WorkerStats(ctx context.Context, workerID string) (*model.WorkerStats, error)
	MonumentAnalytics(ctx context.Context, monumentID string) (*model.MonumentAnalytics, error)
}

type analyticsService struct {
	projectRepo  repository.ProjectRepository
	monumentRepo repository.MonumentRepository
	userRepo     repository.UserRepository
}

func NewAnalyticsService(
	projectRepo repository.ProjectRepository,
	monumentRepo repository.MonumentRepository,
	userRepo repository.UserRepository,
) AnalyticsService {
	return &analyticsService{
		projectRepo:  projectRepo,
		monumentRepo: monumentRepo,
		userRepo:     userRepo,
	}
}

func (s *analyticsService) ProjectAnalytics(ctx context.Context, projectID string) (*model.ProjectAnalytics, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	a := analytics.ProjectMetrics(*project, time.Now())
	return &a, nil
}

func (s *analyticsService) ContractorStats(ctx context.Context, contractorID string) (*model.ContractorStats, error) {
	id, err := uuid.Parse(contractorID)
	if err != nil {
		return nil, fmt.Errorf("invalid contractor id: %w", err)
	}

	projects, err := s.projectRepo.ListByContractor(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	workers, err := s.userRepo.ListByCreator(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workers: %w", err)
	}

	stats := analytics.ContractorRollup(id, projects, workers, time.Now())
	return &stats, nil
}

func (s *analyticsService) WorkerStats(ctx context.Context, workerID string) (*model.WorkerStats, error) {
	id, err := uuid.Parse(workerID)
	if err != nil {
		return nil, fmt.Errorf("invalid worker id: %w", err)
	}

	projects, err := s.projectRepo.ListAssignedTo(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	stats := analytics.WorkerRollup(id, projects, time.Now())
	return &stats, nil
}

func (s *analyticsService) MonumentAnalytics(ctx context.Context, monumentID string) (*model.MonumentAnalytics, error) {
	monument, err := s.monumentRepo.GetByID(ctx, monumentID)
	if err != nil {
		return nil, fmt.Errorf("monument not found: %w", err)
	}

	projects, err := s.projectRepo.ListByMonument(ctx, monumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	stats := analytics.MonumentRollup(monument.ID, projects, time.Now())
	return &stats, nil
}
