package services

import (
	"context"
	"strings"

	apperrors "daytrack.com/daytrack/internal/errors"
	model "daytrack.com/daytrack/internal/models"
	repository "daytrack.com/daytrack/internal/repositories"
)

type TaskService struct {
	tasks    *repository.TaskRepository
	profiles *repository.ProfileRepository
}

func NewTaskService(tasks *repository.TaskRepository, profiles *repository.ProfileRepository) *TaskService {
	return &TaskService{
		tasks:    tasks,
		profiles: profiles,
	}
}

// TasksForDate returns one user's tasks for a date, newest first.
func (s *TaskService) TasksForDate(ctx context.Context, userID, date string) ([]model.Task, error) {
	return s.tasks.ListForDate(ctx, userID, date)
}

// AllTasksForDate returns every user's tasks for a date with owner display
// fields attached. Marks and tasks keep their own rows; the join is a
// second query over the owning profiles.
func (s *TaskService) AllTasksForDate(ctx context.Context, date string) ([]model.Task, error) {
	tasks, err := s.tasks.ListAllForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	ids := make([]string, 0, len(tasks))
	seen := map[string]bool{}
	for _, t := range tasks {
		if !seen[t.UserID] {
			seen[t.UserID] = true
			ids = append(ids, t.UserID)
		}
	}

	profiles, err := s.profiles.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	for i := range tasks {
		if p, ok := byID[tasks[i].UserID]; ok {
			tasks[i].UserEmail = p.Email
			tasks[i].UserName = displayName(p)
		} else {
			tasks[i].UserEmail = "Unknown"
			tasks[i].UserName = "Unknown"
		}
	}

	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, userID, content, date string) (*model.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrEmptyContent
	}
	return s.tasks.Create(ctx, userID, content, date)
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, patch repository.TaskPatch) error {
	return s.tasks.Update(ctx, id, patch)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// StopRunningTimers clears the running flag on every task still marked
// running in the store, persisting its accumulated duration. Run at end of
// day so a timer abandoned with its board does not run forever.
func (s *TaskService) StopRunningTimers(ctx context.Context) (int, error) {
	tasks, err := s.tasks.ListRunning(ctx)
	if err != nil {
		return 0, err
	}

	stopped := 0
	for _, t := range tasks {
		running := false
		duration := t.DurationSeconds
		if err := s.tasks.Update(ctx, t.ID, repository.TaskPatch{
			IsTimerRunning:  &running,
			DurationSeconds: &duration,
		}); err != nil {
			return stopped, err
		}
		stopped++
	}

	return stopped, nil
}

// displayName prefers the profile name and falls back to the email's local
// part.
func displayName(p model.Profile) string {
	if p.Name != "" {
		return p.Name
	}
	if at := strings.Index(p.Email, "@"); at > 0 {
		return p.Email[:at]
	}
	if p.Email != "" {
		return p.Email
	}
	return "Unknown"
}
