package board

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "daytrack.com/daytrack/internal/errors"
	model "daytrack.com/daytrack/internal/models"
	repository "daytrack.com/daytrack/internal/repositories"
)

const (
	tickInterval = time.Second
	syncInterval = 10 * time.Second
)

// TaskStore is the slice of the record access layer a board mutates.
type TaskStore interface {
	TasksForDate(ctx context.Context, userID, date string) ([]model.Task, error)

	CreateTask(ctx context.Context, userID, content, date string) (*model.Task, error)

	UpdateTask(ctx context.Context, id string, patch repository.TaskPatch) error

	DeleteTask(ctx context.Context, id string) error
}

// MarkStore reads and toggles the college-day mark.
type MarkStore interface {
	MyMark(ctx context.Context, userID, date string) (*model.CalendarMark, error)

	ToggleMark(ctx context.Context, userID, date, markType string) (*model.CalendarMark, error)
}

// Board is one user's live view of a single day. It applies every mutation
// to its in-memory list first and reconciles with the store afterwards;
// the one mutex stands in for the single-threaded event loop the original
// UI ran on. The store is always the source of truth: any divergence a
// failed write leaves behind lasts only until the next reload of the date.
type Board struct {
	userID string
	tasks  TaskStore
	marks  MarkStore

	mu         sync.Mutex
	date       string
	list       []model.Task
	collegeDay bool
	lastUsed   time.Time

	inflight sync.WaitGroup
}

// Snapshot is the read-only view handed to presentation.
type Snapshot struct {
	Date         string       `json:"date"`
	DateLabel    string       `json:"date_label"`
	Tasks        []model.Task `json:"tasks"`
	CollegeDay   bool         `json:"college_day"`
	TotalSeconds int          `json:"total_seconds"`
	TotalLabel   string       `json:"total_label"`
}

func New(userID string, tasks TaskStore, marks MarkStore) *Board {
	return &Board{
		userID:   userID,
		tasks:    tasks,
		marks:    marks,
		date:     time.Now().Format(DateLayout),
		lastUsed: time.Now(),
	}
}

// Load fetches the task list and mark for the board's current date.
func (b *Board) Load(ctx context.Context) error {
	return b.reload(ctx, b.Date())
}

// reload replaces the whole in-memory state from a fresh fetch. Nothing
// from the previous date survives.
func (b *Board) reload(ctx context.Context, date string) error {
	list, err := b.tasks.TasksForDate(ctx, b.userID, date)
	if err != nil {
		return err
	}

	mark, err := b.marks.MyMark(ctx, b.userID, date)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.touchLocked()
	b.date = date
	b.list = list
	b.collegeDay = mark != nil
	return nil
}

// AddTask prepends an optimistic entry under a temporary id and creates
// the row in the background. On success the entry is swapped for the
// server row; if it was deleted in the meantime the server row is dropped.
// On failure the temporary entry stays, unreconciled.
func (b *Board) AddTask(content string) (model.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Task{}, apperrors.ErrEmptyContent
	}

	tmp := model.Task{
		ID:      uuid.NewString(),
		Content: content,
		UserID:  b.userID,
	}

	b.mu.Lock()
	b.touchLocked()
	tmp.Date = b.date
	b.list = append([]model.Task{tmp}, b.list...)
	b.mu.Unlock()

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()

		// Deliberately detached from the caller: the result is applied,
		// or discarded, whenever it arrives.
		created, err := b.tasks.CreateTask(context.Background(), b.userID, content, tmp.Date)
		if err != nil {
			log.Printf("board %s: create failed, temporary task %s kept unreconciled: %v", b.userID, tmp.ID, err)
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.list {
			if b.list[i].ID == tmp.ID {
				b.list[i] = *created
				return
			}
		}
		// The temporary entry is gone; the created row has no home here.
	}()

	return tmp, nil
}

// ToggleTimer flips the running flag of one task and pushes the new flag
// with the current duration. Unknown ids are a silent no-op. A failed push
// is logged and the local flag stands.
func (b *Board) ToggleTimer(id string) {
	b.mu.Lock()
	idx := b.indexLocked(id)
	if idx < 0 {
		b.mu.Unlock()
		return
	}
	b.touchLocked()
	b.list[idx].IsTimerRunning = !b.list[idx].IsTimerRunning
	running := b.list[idx].IsTimerRunning
	duration := b.list[idx].DurationSeconds
	b.mu.Unlock()

	b.pushUpdate(id, repository.TaskPatch{
		IsTimerRunning:  &running,
		DurationSeconds: &duration,
	})
}

// ToggleComplete flips completion. Completing always stops the timer,
// whatever its state was; both flags and the duration go out in one update.
func (b *Board) ToggleComplete(id string) {
	b.mu.Lock()
	idx := b.indexLocked(id)
	if idx < 0 {
		b.mu.Unlock()
		return
	}
	b.touchLocked()
	b.list[idx].IsCompleted = !b.list[idx].IsCompleted
	b.list[idx].IsTimerRunning = false
	completed := b.list[idx].IsCompleted
	running := false
	duration := b.list[idx].DurationSeconds
	b.mu.Unlock()

	b.pushUpdate(id, repository.TaskPatch{
		IsCompleted:     &completed,
		IsTimerRunning:  &running,
		DurationSeconds: &duration,
	})
}

// DeleteTask removes the task optimistically and waits for the store. On
// failure the exact pre-delete list is restored. Confirmation is the
// caller's concern.
func (b *Board) DeleteTask(ctx context.Context, id string) error {
	b.mu.Lock()
	idx := b.indexLocked(id)
	if idx < 0 {
		b.mu.Unlock()
		return nil
	}
	b.touchLocked()
	snapshot := make([]model.Task, len(b.list))
	copy(snapshot, b.list)
	b.list = append(b.list[:idx], b.list[idx+1:]...)
	b.mu.Unlock()

	if err := b.tasks.DeleteTask(ctx, id); err != nil {
		b.mu.Lock()
		b.list = snapshot
		b.mu.Unlock()
		log.Printf("board %s: delete task %s failed, list restored: %v", b.userID, id, err)
		return err
	}

	return nil
}

// Tick advances every running timer by one second. It is a local
// projection of elapsed time, not a wall-clock measurement.
func (b *Board) Tick() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.list {
		if b.list[i].IsTimerRunning {
			b.list[i].DurationSeconds++
		}
	}
}

// SyncRunning pushes the current duration of every running task, one
// fire-and-forget update per task. Failures are logged, never retried.
func (b *Board) SyncRunning() {
	b.mu.Lock()
	type pending struct {
		id       string
		duration int
	}
	var updates []pending
	for _, t := range b.list {
		if t.IsTimerRunning {
			updates = append(updates, pending{id: t.ID, duration: t.DurationSeconds})
		}
	}
	b.mu.Unlock()

	for _, u := range updates {
		duration := u.duration
		b.pushUpdate(u.id, repository.TaskPatch{DurationSeconds: &duration})
	}
}

func (b *Board) pushUpdate(id string, patch repository.TaskPatch) {
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		if err := b.tasks.UpdateTask(context.Background(), id, patch); err != nil {
			log.Printf("board %s: update task %s failed, local state kept: %v", b.userID, id, err)
		}
	}()
}

// SetDate reloads the board for another day.
func (b *Board) SetDate(ctx context.Context, date string) error {
	if !ValidDate(date) {
		return apperrors.ErrInvalidDate
	}
	return b.reload(ctx, date)
}

// ChangeDate moves the selected day by the given offset.
func (b *Board) ChangeDate(ctx context.Context, days int) error {
	next, err := AddDays(b.Date(), days)
	if err != nil {
		return apperrors.ErrInvalidDate
	}
	return b.reload(ctx, next)
}

func (b *Board) GoToToday(ctx context.Context) error {
	return b.reload(ctx, time.Now().Format(DateLayout))
}

// ToggleCollege runs the mark toggle and then flips the local flag whatever
// the outcome was; a failure leaves a divergence the next reload resolves.
func (b *Board) ToggleCollege(ctx context.Context) bool {
	b.mu.Lock()
	b.touchLocked()
	date := b.date
	b.mu.Unlock()

	if _, err := b.marks.ToggleMark(ctx, b.userID, date, model.MarkTypeCollege); err != nil {
		log.Printf("board %s: mark toggle failed for %s: %v", b.userID, date, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.collegeDay = !b.collegeDay
	return b.collegeDay
}

func (b *Board) Date() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.date
}

// Tasks returns a copy of the current list, newest first.
func (b *Board) Tasks() []model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Task, len(b.list))
	copy(out, b.list)
	return out
}

func (b *Board) TotalSeconds() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, t := range b.list {
		total += t.DurationSeconds
	}
	return total
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.touchLocked()

	tasks := make([]model.Task, len(b.list))
	copy(tasks, b.list)

	total := 0
	for i := range tasks {
		tasks[i].DurationLabel = FormatClock(tasks[i].DurationSeconds)
		total += tasks[i].DurationSeconds
	}

	return Snapshot{
		Date:         b.date,
		DateLabel:    DayLabel(b.date, time.Now()),
		Tasks:        tasks,
		CollegeDay:   b.collegeDay,
		TotalSeconds: total,
		TotalLabel:   FormatTotal(total),
	}
}

func (b *Board) LastUsed() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastUsed
}

// Wait blocks until every in-flight reconciliation has finished.
func (b *Board) Wait() {
	b.inflight.Wait()
}

// Run drives the 1s tick and the 10s sync sweep until the context ends.
func (b *Board) Run(ctx context.Context) {
	tick := time.NewTicker(tickInterval)
	defer tick.Stop()
	syncTick := time.NewTicker(syncInterval)
	defer syncTick.Stop()

	for {
		select {
		case <-tick.C:
			b.Tick()
		case <-syncTick.C:
			b.SyncRunning()
		case <-ctx.Done():
			return
		}
	}
}

func (b *Board) indexLocked(id string) int {
	for i := range b.list {
		if b.list[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) touchLocked() {
	b.lastUsed = time.Now()
}
