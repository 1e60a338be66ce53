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

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type MilestoneTimelineDTO struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

type CreateMilestoneRequest struct {
	Name               string                `json:"name" binding:"required"`
	Description        string                `json:"description"`
	Budget             int64                 `json:"budget" binding:"required,gte=0"`
	Timeline           MilestoneTimelineDTO  `json:"timeline" binding:"required"`
	ClearanceChecklist []model.ChecklistItem `json:"clearance_checklist"`
}

type UpdateMilestoneRequest struct {
	Name               string                 `json:"name"`
	Description        *string                `json:"description"`
	Budget             *int64                 `json:"budget" binding:"omitempty,gte=0"`
	Timeline           *MilestoneTimelineDTO  `json:"timeline"`
	ClearanceChecklist *[]model.ChecklistItem `json:"clearance_checklist"`
	ProofOfWork        *model.ProofOfWork     `json:"proof_of_work"`
	Documents          *[]model.ProofDocument `json:"documents"`
}

type AddInspectionRequest struct {
	Feedback  []string              `json:"feedback" binding:"required,min=1"`
	Documents []model.ProofDocument `json:"documents"`
}

type SubmitBillRequest struct {
	BillNumber string                `json:"bill_number" binding:"required"`
	Amount     decimal.Decimal       `json:"amount" binding:"required"`
	Notes      string                `json:"notes"`
	Documents  []model.ProofDocument `json:"documents"`
}

// --- Interface ---

type MilestoneService interface {
	CreateMilestone(ctx context.Context, userID, projectID string, req CreateMilestoneRequest) (*model.Milestone, error)
	GetMilestone(ctx context.Context, projectID, id string) (*model.Milestone, error)
	ListMilestones(ctx context.Context, projectID string) ([]model.Milestone, error)
	UpdateMilestone(ctx context.Context, userID, projectID, id string, req UpdateMilestoneRequest) (*model.Milestone, error)
	StartMilestone(ctx context.Context, userID, projectID, id string) (*model.Milestone, error)
	CompleteMilestone(ctx context.Context, userID, projectID, id string) (*model.Milestone, error)
	AddInspection(ctx context.Context, userID, projectID, id string, req AddInspectionRequest) (*model.Milestone, error)
	ForwardToAdmin(ctx context.Context, userID, projectID, id string) (*model.Milestone, error)
	ApproveReview(ctx context.Context, userID, projectID, id string) (*model.Milestone, error)
	SubmitBill(ctx context.Context, userID, projectID, id string, req SubmitBillRequest) (*model.Milestone, error)
	GetEditHistory(ctx context.Context, projectID, id string) (model.AuditHistory, error)
}

type milestoneService struct {
	milestoneRepo repository.MilestoneRepository
	projectRepo   repository.ProjectRepository
	userRepo      repository.UserRepository
	txManager     repository.TransactionManager
	hub           *ws.Hub
}

func NewMilestoneService(
	milestoneRepo repository.MilestoneRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) MilestoneService {
	return &milestoneService{
		milestoneRepo: milestoneRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		txManager:     txManager,
		hub:           hub,
	}
}

// --- Implementation ---

func (s *milestoneService) CreateMilestone(ctx context.Context, userID, projectID string, req CreateMilestoneRequest) (*model.Milestone, error) {
	actor, err := resolveActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !workflow.Allowed(workflow.OpMilestoneEdit, actor.Role) {
		return nil, workflow.ErrForbidden
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	if req.Timeline.End.Before(req.Timeline.Start) {
		return nil, fmt.Errorf("timeline end must not precede start")
	}

	milestone := model.Milestone{
		ProjectID:          project.ID,
		Name:               req.Name,
		Description:        req.Description,
		Budget:             req.Budget,
		Status:             model.MilestonePending,
		ClearanceChecklist: req.ClearanceChecklist,
		Timeline: model.MilestoneTimeline{
			Start: req.Timeline.Start,
			End:   req.Timeline.End,
		},
		AdminReview: model.ReviewUnset,
		EditHistory: model.AuditHistory{},
	}

	if err := s.milestoneRepo.Create(ctx, &milestone); err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}

	return &milestone, nil
}

func (s *milestoneService) GetMilestone(ctx context.Context, projectID, id string) (*model.Milestone, error) {
	milestone, err := s.milestoneRepo.Get(ctx, projectID, id)
	if err != nil {
		return nil, fmt.Errorf("milestone not found: %w", err)
	}
	return milestone, nil
}

func (s *milestoneService) ListMilestones(ctx context.Context, projectID string) ([]model.Milestone, error) {
	return s.milestoneRepo.ListByProject(ctx, projectID)
}

func (s *milestoneService) UpdateMilestone(ctx context.Context, userID, projectID, id string, req UpdateMilestoneRequest) (*model.Milestone, error) {
	actor, err := resolveActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !workflow.Allowed(workflow.OpMilestoneEdit, actor.Role) {
		// Workers may only stage proof-of-work evidence
		proofOnly := actor.Role == model.RoleWorker &&
			req.Name == "" && req.Description == nil && req.Budget == nil &&
			req.Timeline == nil && req.ClearanceChecklist == nil
		if !proofOnly {
			return nil, workflow.ErrForbidden
		}
	}

	var updated *model.Milestone
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		milestone, loadErr := s.milestoneRepo.GetForUpdate(txCtx, projectID, id)
		if loadErr != nil {
			return fmt.Errorf("milestone not found: %w", loadErr)
		}

		snapshot := *milestone
		if req.Name != "" {
			milestone.Name = req.Name
		}
		if req.Description != nil {
			milestone.Description = *req.Description
		}
		if req.Budget != nil {
			milestone.Budget = *req.Budget
		}
		if req.Timeline != nil {
			if req.Timeline.End.Before(req.Timeline.Start) {
				return fmt.Errorf("timeline end must not precede start")
			}
			milestone.Timeline = model.MilestoneTimeline{Start: req.Timeline.Start, End: req.Timeline.End}
		}
		if req.ClearanceChecklist != nil {
			milestone.ClearanceChecklist = *req.ClearanceChecklist
		}
		if req.ProofOfWork != nil {
			milestone.ProofOfWork = *req.ProofOfWork
		}
		if req.Documents != nil {
			milestone.Documents = *req.Documents
		}

		changes := changetrack.MilestoneDiff(snapshot, *milestone)
		if len(changes) == 0 {
			updated = milestone
			return nil
		}

		milestone.EditHistory = changetrack.Record(milestone.EditHistory, changes, actor, time.Now())
		if saveErr := s.milestoneRepo.Save(txCtx, milestone); saveErr != nil {
			return fmt.Errorf("failed to save milestone: %w", saveErr)
		}
		updated = milestone
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// apply runs one workflow step on a locked milestone snapshot and saves
// the result, all inside a transaction.
func (s *milestoneService) apply(
	ctx context.Context,
	userID, projectID, id string,
	step func(m model.Milestone, actor model.Actor, now time.Time) (model.Milestone, error),
) (*model.Milestone, model.Actor, error) {
	actor, err := resolveActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, model.Actor{}, err
	}

	var updated *model.Milestone
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		milestone, loadErr := s.milestoneRepo.GetForUpdate(txCtx, projectID, id)
		if loadErr != nil {
			return fmt.Errorf("milestone not found: %w", loadErr)
		}

		next, applyErr := step(*milestone, actor, time.Now())
		if applyErr != nil {
			return applyErr
		}

		if saveErr := s.milestoneRepo.Save(txCtx, &next); saveErr != nil {
			return fmt.Errorf("failed to save milestone: %w", saveErr)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, model.Actor{}, err
	}

	return updated, actor, nil
}

func (s *milestoneService) StartMilestone(ctx context.Context, userID, projectID, id string) (*model.Milestone, error) {
	milestone, actor, err := s.apply(ctx, userID, projectID, id, workflow.StartMilestone)
	if err != nil {
		return nil, err
	}
	notify(s.hub, "milestone_started", map[string]interface{}{
		"project_id":   projectID,
		"milestone_id": milestone.ID.String(),
		"by":           actor.Name,
	})
	return milestone, nil
}

func (s *milestoneService) CompleteMilestone(ctx context.Context, userID, projectID, id string) (*model.Milestone, error) {
	milestone, actor, err := s.apply(ctx, userID, projectID, id, workflow.CompleteMilestone)
	if err != nil {
		return nil, err
	}
	notify(s.hub, "milestone_completed", map[string]interface{}{
		"project_id":   projectID,
		"milestone_id": milestone.ID.String(),
		"by":           actor.Name,
	})
	return milestone, nil
}

func (s *milestoneService) AddInspection(ctx context.Context, userID, projectID, id string, req AddInspectionRequest) (*model.Milestone, error) {
	rec := model.InspectionRecord{
		Feedback:  req.Feedback,
		Documents: req.Documents,
	}
	milestone, _, err := s.apply(ctx, userID, projectID, id,
		func(m model.Milestone, actor model.Actor, now time.Time) (model.Milestone, error) {
			return workflow.AddInspectionRecord(m, rec, actor, now)
		})
	return milestone, err
}

func (s *milestoneService) ForwardToAdmin(ctx context.Context, userID, projectID, id string) (*model.Milestone, error) {
	milestone, actor, err := s.apply(ctx, userID, projectID, id, workflow.ForwardToAdmin)
	if err != nil {
		return nil, err
	}
	notify(s.hub, "milestone_forwarded", map[string]interface{}{
		"project_id":   projectID,
		"milestone_id": milestone.ID.String(),
		"by":           actor.Name,
	})
	return milestone, nil
}

func (s *milestoneService) ApproveReview(ctx context.Context, userID, projectID, id string) (*model.Milestone, error) {
	milestone, actor, err := s.apply(ctx, userID, projectID, id, workflow.ApproveReview)
	if err != nil {
		return nil, err
	}
	notify(s.hub, "milestone_approved", map[string]interface{}{
		"project_id":   projectID,
		"milestone_id": milestone.ID.String(),
		"by":           actor.Name,
	})
	return milestone, nil
}

func (s *milestoneService) SubmitBill(ctx context.Context, userID, projectID, id string, req SubmitBillRequest) (*model.Milestone, error) {
	rec := model.FinancialRecord{
		BillDetails: model.BillDetails{
			BillNumber: req.BillNumber,
			Amount:     req.Amount,
			Notes:      req.Notes,
		},
		Documents: req.Documents,
	}
	milestone, actor, err := s.apply(ctx, userID, projectID, id,
		func(m model.Milestone, actor model.Actor, now time.Time) (model.Milestone, error) {
			return workflow.SubmitBill(m, rec, actor, now)
		})
	if err != nil {
		return nil, err
	}
	notify(s.hub, "bill_submitted", map[string]interface{}{
		"project_id":   projectID,
		"milestone_id": milestone.ID.String(),
		"by":           actor.Name,
	})
	return milestone, nil
}

func (s *milestoneService) GetEditHistory(ctx context.Context, projectID, id string) (model.AuditHistory, error) {
	milestone, err := s.milestoneRepo.Get(ctx, projectID, id)
	if err != nil {
		return nil, fmt.Errorf("milestone not found: %w", err)
	}
	return milestone.EditHistory, nil
}
