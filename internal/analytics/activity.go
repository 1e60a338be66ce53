package analytics

import (
	"fmt"
	"sort"
	"time"

	"heritageportal/internal/model"

	"github.com/google/uuid"
)

const activityLimit = 15

// recentActivity merges project-level and milestone-level audit entries
// attributable to the contractor or their crew into one feed, sorted
// newest first and truncated to the most recent entries.
func recentActivity(contractorID uuid.UUID, crew map[uuid.UUID]string, projects []model.Project, now time.Time) []model.ActivityItem {
	var feed []model.ActivityItem

	roleOf := func(userID uuid.UUID) (string, bool) {
		if userID == contractorID {
			return model.RoleContractor, true
		}
		if role, ok := crew[userID]; ok {
			return role, true
		}
		return "", false
	}

	for _, p := range projects {
		for _, entry := range p.EditHistory {
			role, ok := roleOf(entry.UserID)
			if !ok {
				continue
			}
			feed = append(feed, model.ActivityItem{
				Type:       "project",
				Text:       describe(entry, p.Name),
				Date:       entry.EditedAt,
				Link:       fmt.Sprintf("/projects/%s", p.ID),
				ActorRole:  role,
				Importance: model.ImportanceMedium,
			})
		}
		for _, m := range p.Milestones {
			for _, entry := range m.EditHistory {
				role, ok := roleOf(entry.UserID)
				if !ok {
					continue
				}
				feed = append(feed, model.ActivityItem{
					Type:       "milestone",
					Text:       describe(entry, m.Name),
					Date:       entry.EditedAt,
					Link:       fmt.Sprintf("/projects/%s/milestones/%s", p.ID, m.ID),
					ActorRole:  role,
					Importance: milestoneImportance(entry),
				})
			}
		}
	}

	sort.SliceStable(feed, func(i, j int) bool { return feed[i].Date.After(feed[j].Date) })
	if len(feed) > activityLimit {
		feed = feed[:activityLimit]
	}
	return feed
}

// milestoneImportance ranks a milestone edit high when the change set its
// status to completed.
func milestoneImportance(entry model.AuditEntry) string {
	for _, ch := range entry.Changes {
		if ch.Field == "status" && fmt.Sprintf("%v", ch.NewValue) == model.MilestoneCompleted {
			return model.ImportanceHigh
		}
	}
	return model.ImportanceMedium
}

func describe(entry model.AuditEntry, name string) string {
	for _, ch := range entry.Changes {
		if ch.Field == "status" {
			return fmt.Sprintf("%s marked %s %v", entry.EditedBy, name, ch.NewValue)
		}
	}
	return fmt.Sprintf("%s updated %s", entry.EditedBy, name)
}
