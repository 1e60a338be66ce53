package workflow

import "heritageportal/internal/model"

// Operation identifies a guarded mutation on a project or milestone.
type Operation string

const (
	OpProjectStart       Operation = "project.start"
	OpProjectPause       Operation = "project.pause"
	OpProjectResume      Operation = "project.resume"
	OpProjectComplete    Operation = "project.complete"
	OpProjectSetProgress Operation = "project.set_progress"
	OpProjectEdit        Operation = "project.edit"

	OpMilestoneStart    Operation = "milestone.start"
	OpMilestoneComplete Operation = "milestone.complete"
	OpMilestoneEdit     Operation = "milestone.edit"

	OpInspectionAdd     Operation = "inspection.add"
	OpInspectionForward Operation = "inspection.forward"
	OpReviewApprove     Operation = "review.approve"
	OpBillSubmit        Operation = "bill.submit"
)

// allowedRoles is the single permission table consulted by every guarded
// operation. Role checks are never re-derived at call sites.
var allowedRoles = map[Operation][]string{
	OpProjectStart:       {model.RoleContractor, model.RoleAdmin, model.RoleSuperAdmin},
	OpProjectPause:       {model.RoleAdmin, model.RoleSuperAdmin},
	OpProjectResume:      {model.RoleAdmin, model.RoleSuperAdmin},
	OpProjectComplete:    {model.RoleAdmin, model.RoleSuperAdmin},
	OpProjectSetProgress: {model.RoleContractor, model.RoleWorker, model.RoleAdmin, model.RoleSuperAdmin},
	OpProjectEdit:        {model.RoleAdmin, model.RoleSuperAdmin},

	OpMilestoneStart:    {model.RoleContractor, model.RoleWorker, model.RoleAdmin, model.RoleSuperAdmin},
	OpMilestoneComplete: {model.RoleAdmin, model.RoleSuperAdmin},
	OpMilestoneEdit:     {model.RoleContractor, model.RoleAdmin, model.RoleSuperAdmin},

	OpInspectionAdd:     {model.RoleQualityManager},
	OpInspectionForward: {model.RoleQualityManager},
	OpReviewApprove:     {model.RoleAdmin},
	OpBillSubmit:        {model.RoleFinancialOfficer},
}

// Allowed reports whether the role may perform the operation.
func Allowed(op Operation, role string) bool {
	for _, r := range allowedRoles[op] {
		if r == role {
			return true
		}
	}
	return false
}
