package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "daytrack.com/daytrack/internal/models"
)

type MarkRepository struct {
	db *gorm.DB
}

func NewMarkRepository(db *gorm.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// FindForUserDate returns the user's mark for a date, or nil when none
// exists.
func (r *MarkRepository) FindForUserDate(ctx context.Context, userID, date string) (*model.CalendarMark, error) {
	var mark model.CalendarMark
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&mark).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mark, nil
}

func (r *MarkRepository) ListForDate(ctx context.Context, date string) ([]model.CalendarMark, error) {
	var marks []model.CalendarMark
	err := r.db.WithContext(ctx).Where("date = ?", date).Find(&marks).Error
	return marks, err
}

func (r *MarkRepository) Create(ctx context.Context, userID, date, markType string) (*model.CalendarMark, error) {
	mark := &model.CalendarMark{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      date,
		Type:      markType,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(mark).Error; err != nil {
		return nil, err
	}

	return mark, nil
}

func (r *MarkRepository) UpdateType(ctx context.Context, id, markType string) error {
	return r.db.WithContext(ctx).Model(&model.CalendarMark{}).
		Where("id = ?", id).
		Update("type", markType).Error
}

func (r *MarkRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CalendarMark{}).Error
}
