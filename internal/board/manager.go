package board

import (
	"context"
	"log"
	"sync"
	"time"
)

// Manager hands out one live board per user and retires boards nobody has
// touched for a while.
type Manager struct {
	tasks TaskStore
	marks MarkStore
	idle  time.Duration

	mu     sync.Mutex
	boards map[string]*managedBoard
}

type managedBoard struct {
	board  *Board
	cancel context.CancelFunc
}

func NewManager(tasks TaskStore, marks MarkStore, idle time.Duration) *Manager {
	return &Manager{
		tasks:  tasks,
		marks:  marks,
		idle:   idle,
		boards: make(map[string]*managedBoard),
	}
}

// Get returns the user's board, creating and loading one on today's date
// the first time. The board's tick loops start with it.
func (m *Manager) Get(ctx context.Context, userID string) (*Board, error) {
	m.mu.Lock()
	if entry, ok := m.boards[userID]; ok {
		m.mu.Unlock()
		return entry.board, nil
	}
	m.mu.Unlock()

	b := New(userID, m.tasks, m.marks)
	if err := b.Load(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have raced us here; keep the winner.
	if entry, ok := m.boards[userID]; ok {
		return entry.board, nil
	}

	runCtx, cancel := context.WithCancel(context.Background())
	m.boards[userID] = &managedBoard{board: b, cancel: cancel}
	go b.Run(runCtx)

	return b, nil
}

// Remove stops and drops the user's board, waiting for in-flight writes.
func (m *Manager) Remove(userID string) {
	m.mu.Lock()
	entry, ok := m.boards[userID]
	if ok {
		delete(m.boards, userID)
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	entry.cancel()
	entry.board.Wait()
}

// ReapIdle retires boards idle past the configured timeout and reports how
// many went away.
func (m *Manager) ReapIdle() int {
	cutoff := time.Now().Add(-m.idle)

	m.mu.Lock()
	var stale []string
	for userID, entry := range m.boards {
		if entry.board.LastUsed().Before(cutoff) {
			stale = append(stale, userID)
		}
	}
	m.mu.Unlock()

	for _, userID := range stale {
		m.Remove(userID)
	}

	if len(stale) > 0 {
		log.Printf("board manager: reaped %d idle board(s)", len(stale))
	}
	return len(stale)
}

// Shutdown stops every board.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	var userIDs []string
	for userID := range m.boards {
		userIDs = append(userIDs, userID)
	}
	m.mu.Unlock()

	for _, userID := range userIDs {
		m.Remove(userID)
	}
}
