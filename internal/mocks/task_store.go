package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. The default
// implementation keeps tasks in memory with the same ownership scoping,
// ordering, and pagination semantics as the real store, so handler tests
// exercise realistic listings without a database.
type MockTaskStore struct {
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, ownerID, id int64) (*domain.Task, error)
	ListFn    func(ctx context.Context, ownerID int64, params store.ListParams) ([]*domain.Task, int, error)
	UpdateFn  func(ctx context.Context, ownerID, id int64, update domain.TaskUpdate) (*domain.Task, error)
	DeleteFn  func(ctx context.Context, ownerID, id int64) error

	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64

	CreateErr error
	ListErr   error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
	}
}

// Create implements the store.TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task.ID = m.nextID
	m.nextID++
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

// GetByID implements the store.TaskStore interface.
func (m *MockTaskStore) GetByID(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, ownerID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.tasks[id]
	if !exists || task.UserID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	found := *task
	return &found, nil
}

// List implements the store.TaskStore interface.
func (m *MockTaskStore) List(
	ctx context.Context,
	ownerID int64,
	params store.ListParams,
) ([]*domain.Task, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, params)
	}
	if m.ListErr != nil {
		return nil, 0, m.ListErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	params = params.Normalize()

	owned := make([]*domain.Task, 0)
	for _, task := range m.tasks {
		if task.UserID == ownerID {
			copied := *task
			owned = append(owned, &copied)
		}
	}

	sort.SliceStable(owned, func(i, j int) bool {
		less := lessBy(params.SortBy, owned[i], owned[j])
		if less == 0 {
			// Stable tiebreak on ID, always ascending.
			return owned[i].ID < owned[j].ID
		}
		if params.Order == store.SortDesc {
			return less > 0
		}
		return less < 0
	})

	total := len(owned)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}
	return owned[start:end], total, nil
}

// lessBy compares two tasks on the given sort field, returning a negative,
// zero, or positive value like a three-way comparison.
func lessBy(field store.SortField, a, b *domain.Task) int {
	switch field {
	case store.SortByPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	case store.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return a.EndDate.Time.Compare(b.EndDate.Time)
	}
}

// Update implements the store.TaskStore interface.
func (m *MockTaskStore) Update(
	ctx context.Context,
	ownerID, id int64,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, id, update)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.tasks[id]
	if !exists || task.UserID != ownerID {
		return nil, store.ErrTaskNotFound
	}

	updated := *task
	if err := update.Apply(&updated); err != nil {
		return nil, err
	}
	m.tasks[id] = &updated

	result := updated
	return &result, nil
}

// Delete implements the store.TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, ownerID, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.tasks[id]
	if !exists || task.UserID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}
