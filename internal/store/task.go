package store

import (
	"context"

	"github.com/tasktrack/tasktrack-api/internal/domain"
)

// SortField names a task attribute listings can be ordered by.
type SortField string

// Recognized sort fields.
const (
	SortByEndDate   SortField = "end_date"
	SortByPriority  SortField = "priority"
	SortByCreatedAt SortField = "created_at"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Recognized sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Pagination bounds for task listings.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams controls pagination and ordering of a task listing.
type ListParams struct {
	Page   int
	Limit  int
	SortBy SortField
	Order  SortOrder
}

// DefaultListParams returns the listing defaults: first page of 10 items,
// ordered by end date ascending.
func DefaultListParams() ListParams {
	return ListParams{
		Page:   DefaultPage,
		Limit:  DefaultLimit,
		SortBy: SortByEndDate,
		Order:  SortAsc,
	}
}

// Normalize clamps pagination to its bounds and falls back to the default
// sort field and order for unrecognized values. The API layer rejects
// out-of-range explicit values before they reach the store; this is a second
// line of defense so the store never emits an unbounded or unordered query.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	switch p.SortBy {
	case SortByEndDate, SortByPriority, SortByCreatedAt:
	default:
		p.SortBy = SortByEndDate
	}
	if p.Order != SortDesc {
		p.Order = SortAsc
	}
	return p
}

// Offset returns the row offset implied by the page and limit.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TaskStore defines the interface for task data persistence. Every read and
// write is scoped by the owning user's ID; a task is never visible or
// mutable through any other identity.
type TaskStore interface {
	// Create saves a new task to the store and assigns the store-generated
	// ID and timestamps to the passed task.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID, scoped to the given owner.
	// Returns ErrTaskNotFound if the task does not exist or belongs to a
	// different user.
	GetByID(ctx context.Context, ownerID, id int64) (*domain.Task, error)

	// List returns one page of the owner's tasks plus the total number of
	// tasks the owner has (ignoring pagination). Ordering follows params;
	// priority ordering uses the fixed high<medium<low rank, not
	// lexicographic comparison.
	List(ctx context.Context, ownerID int64, params ListParams) ([]*domain.Task, int, error)

	// Update applies a partial update to a task, scoped to the given owner,
	// and returns the updated task. The updated timestamp is refreshed on
	// every successful mutation.
	// Returns ErrTaskNotFound if the task does not exist or belongs to a
	// different user, or a validation error if the update is invalid.
	Update(ctx context.Context, ownerID, id int64, update domain.TaskUpdate) (*domain.Task, error)

	// Delete removes a task, scoped to the given owner. This is a hard
	// delete.
	// Returns ErrTaskNotFound if the task does not exist or belongs to a
	// different user.
	Delete(ctx context.Context, ownerID, id int64) error
}
