package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "daytrack.com/daytrack/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskPatch is the partial field set accepted by Update. Nil fields are
// left untouched on the row.
type TaskPatch struct {
	Content         *string
	IsCompleted     *bool
	DurationSeconds *int
	IsTimerRunning  *bool
}

func (p TaskPatch) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.IsCompleted != nil {
		cols["is_completed"] = *p.IsCompleted
	}
	if p.DurationSeconds != nil {
		cols["duration_seconds"] = *p.DurationSeconds
	}
	if p.IsTimerRunning != nil {
		cols["is_timer_running"] = *p.IsTimerRunning
	}
	return cols
}

func (r *TaskRepository) Create(ctx context.Context, userID, content, date string) (*model.Task, error) {
	task := &model.Task{
		ID:        uuid.NewString(),
		Content:   content,
		UserID:    userID,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) ListForDate(ctx context.Context, userID, date string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

// ListAllForDate returns every user's tasks for a date. Display fields are
// attached by the service layer.
func (r *TaskRepository) ListAllForDate(ctx context.Context, date string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

// ListRunning returns every task still flagged as running, across all
// users and dates.
func (r *TaskRepository) ListRunning(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("is_timer_running = ?", true).
		Find(&tasks).Error
	return tasks, err
}

// Update applies a partial field set. Updating a row that no longer exists
// affects zero rows and is not an error.
func (r *TaskRepository) Update(ctx context.Context, id string, patch TaskPatch) error {
	cols := patch.columns()
	if len(cols) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(cols).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error
}
