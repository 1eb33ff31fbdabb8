package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	apperrors "daytrack.com/daytrack/internal/errors"
	model "daytrack.com/daytrack/internal/models"
	repository "daytrack.com/daytrack/internal/repositories"
)

func newTaskService(t *testing.T) (*TaskService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewProfileRepository(db),
	), db
}

func TestCreateTaskTrimsContent(t *testing.T) {
	service, _ := newTaskService(t)

	task, err := service.CreateTask(context.Background(), "u1", "  write report  ", "2024-06-01")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.Content != "write report" {
		t.Errorf("expected trimmed content, got %q", task.Content)
	}
	if task.IsCompleted || task.IsTimerRunning || task.DurationSeconds != 0 {
		t.Errorf("new task must start idle, got %+v", task)
	}
}

func TestCreateTaskRejectsBlankContent(t *testing.T) {
	service, _ := newTaskService(t)

	for _, content := range []string{"", "   ", "\t\n"} {
		_, err := service.CreateTask(context.Background(), "u1", content, "2024-06-01")
		if !errors.Is(err, apperrors.ErrEmptyContent) {
			t.Errorf("content %q: expected ErrEmptyContent, got %v", content, err)
		}
	}
}

func TestTasksForDateScopedToUser(t *testing.T) {
	service, _ := newTaskService(t)
	ctx := context.Background()

	if _, err := service.CreateTask(ctx, "u1", "mine", "2024-06-01"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateTask(ctx, "u2", "theirs", "2024-06-01"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateTask(ctx, "u1", "other day", "2024-06-02"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tasks, err := service.TasksForDate(ctx, "u1", "2024-06-01")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Content != "mine" {
		t.Fatalf("expected only u1's task for the date, got %+v", tasks)
	}
}

func TestAllTasksForDateAttachesOwners(t *testing.T) {
	db := setupTestDB(t)
	profiles := repository.NewProfileRepository(db)
	service := NewTaskService(repository.NewTaskRepository(db), profiles)
	ctx := context.Background()

	if err := profiles.Upsert(ctx, &model.Profile{ID: "u1", Email: "sara@team.test", Name: "Sara", Role: model.RoleMember}); err != nil {
		t.Fatalf("profile upsert failed: %v", err)
	}

	if _, err := service.CreateTask(ctx, "u1", "known owner", "2024-06-01"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateTask(ctx, "ghost", "orphaned", "2024-06-01"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tasks, err := service.AllTasksForDate(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	for _, task := range tasks {
		switch task.UserID {
		case "u1":
			if task.UserEmail != "sara@team.test" || task.UserName != "Sara" {
				t.Errorf("expected owner fields attached, got %q / %q", task.UserEmail, task.UserName)
			}
		case "ghost":
			if task.UserEmail != "Unknown" || task.UserName != "Unknown" {
				t.Errorf("expected Unknown placeholders, got %q / %q", task.UserEmail, task.UserName)
			}
		default:
			t.Errorf("unexpected task owner %q", task.UserID)
		}
	}
}

func TestStopRunningTimersOnlyTouchesRunning(t *testing.T) {
	service, db := newTaskService(t)
	ctx := context.Background()

	running, err := service.CreateTask(ctx, "u1", "running", "2024-06-01")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	idle, err := service.CreateTask(ctx, "u1", "idle", "2024-06-01")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	on := true
	duration := 120
	if err := service.UpdateTask(ctx, running.ID, repository.TaskPatch{
		IsTimerRunning:  &on,
		DurationSeconds: &duration,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stopped, err := service.StopRunningTimers(ctx)
	if err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if stopped != 1 {
		t.Errorf("expected 1 stopped timer, got %d", stopped)
	}

	var got model.Task
	if err := db.First(&got, "id = ?", running.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.IsTimerRunning {
		t.Error("running timer was not stopped")
	}
	if got.DurationSeconds != 120 {
		t.Errorf("accumulated duration must survive the stop, got %d", got.DurationSeconds)
	}

	got = model.Task{}
	if err := db.First(&got, "id = ?", idle.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.DurationSeconds != 0 {
		t.Errorf("idle task must be untouched, got %d", got.DurationSeconds)
	}
}

func TestDeleteTaskRemovesRow(t *testing.T) {
	service, db := newTaskService(t)
	ctx := context.Background()

	task, err := service.CreateTask(ctx, "u1", "short lived", "2024-06-01")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var count int64
	if err := db.Model(&model.Task{}).Where("id = ?", task.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected the row gone, found %d", count)
	}
}

func TestGroupTasksByUserTotalsAndOrder(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", UserID: "u2", UserEmail: "zoe@team.test", UserName: "Zoe", DurationSeconds: 600},
		{ID: "t2", UserID: "u1", UserEmail: "adam@team.test", UserName: "Adam", DurationSeconds: 3600},
		{ID: "t3", UserID: "u2", UserEmail: "zoe@team.test", UserName: "Zoe", DurationSeconds: 900},
		{ID: "t4", UserID: "u1", UserEmail: "adam@team.test", UserName: "Adam", DurationSeconds: 1800},
	}

	groups := GroupTasksByUser(tasks)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	if groups[0].UserEmail != "adam@team.test" || groups[1].UserEmail != "zoe@team.test" {
		t.Fatalf("groups must be sorted by email, got %s then %s", groups[0].UserEmail, groups[1].UserEmail)
	}

	adam := groups[0]
	if adam.TotalSeconds != 5400 || adam.TotalLabel != "1h 30m" {
		t.Errorf("adam's total wrong: %d %q", adam.TotalSeconds, adam.TotalLabel)
	}
	if len(adam.Tasks) != 2 || adam.Tasks[0].ID != "t2" || adam.Tasks[1].ID != "t4" {
		t.Errorf("bucket must keep the input task order, got %+v", adam.Tasks)
	}

	zoe := groups[1]
	if zoe.TotalSeconds != 1500 || zoe.TotalLabel != "0h 25m" {
		t.Errorf("zoe's total wrong: %d %q", zoe.TotalSeconds, zoe.TotalLabel)
	}
}

func TestGroupTasksByUserEmpty(t *testing.T) {
	if groups := GroupTasksByUser(nil); len(groups) != 0 {
		t.Errorf("expected no groups, got %+v", groups)
	}
}
