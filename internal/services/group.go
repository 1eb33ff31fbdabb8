package services

import (
	"sort"

	"daytrack.com/daytrack/internal/board"
	model "daytrack.com/daytrack/internal/models"
)

// UserTasks is one user's slice of the HR day view with the tracked total.
type UserTasks struct {
	UserID       string       `json:"user_id"`
	UserEmail    string       `json:"user_email"`
	UserName     string       `json:"user_name"`
	TotalSeconds int          `json:"total_seconds"`
	TotalLabel   string       `json:"total_label"`
	Tasks        []model.Task `json:"tasks"`
}

// GroupTasksByUser buckets a day's tasks per owner, keeping each bucket's
// task order, with buckets sorted by owner email.
func GroupTasksByUser(tasks []model.Task) []UserTasks {
	byUser := map[string]*UserTasks{}
	var order []string

	for _, t := range tasks {
		group, ok := byUser[t.UserID]
		if !ok {
			group = &UserTasks{
				UserID:    t.UserID,
				UserEmail: t.UserEmail,
				UserName:  t.UserName,
			}
			byUser[t.UserID] = group
			order = append(order, t.UserID)
		}
		t.DurationLabel = board.FormatClock(t.DurationSeconds)
		group.Tasks = append(group.Tasks, t)
		group.TotalSeconds += t.DurationSeconds
	}

	groups := make([]UserTasks, 0, len(order))
	for _, id := range order {
		g := byUser[id]
		g.TotalLabel = board.FormatTotal(g.TotalSeconds)
		groups = append(groups, *g)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].UserEmail < groups[j].UserEmail
	})

	return groups
}
