package api

import (
	"log/slog"
	"net/http"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// TaskHandler handles the task CRUD endpoints. Every operation runs against
// the authenticated user's tasks only; task IDs belonging to other users are
// indistinguishable from IDs that don't exist.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore) *TaskHandler {
	return &TaskHandler{
		taskStore: taskStore,
		logger:    slog.Default().With(slog.String("component", "task_handler")),
	}
}

// List handles GET /tasks. Pagination and ordering come from the query
// string; the response carries the page plus totals so clients can render
// page controls.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := getUserFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token supplied")
		return
	}

	params, err := parseListParams(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, total, err := h.taskStore.List(ctx, user.ID, params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	items := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, taskToResponse(task))
	}

	shared.RespondWithData(w, r, http.StatusOK, TaskListResponse{
		Items:      items,
		Pagination: newPagination(params.Page, params.Limit, total),
	})
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := getUserFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token supplied")
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskStore.GetByID(ctx, user.ID, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, taskToResponse(task))
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	user, ok := getUserFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token supplied")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationFieldErrors(err))
		return
	}

	endDate, err := domain.ParseDate(req.EndDate)
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError("endDate",
			"must be a calendar date in YYYY-MM-DD format", domain.ErrInvalidDate), "")
		return
	}

	task, err := domain.NewTask(user.ID, req.Title, req.Description,
		domain.Priority(req.Priority), endDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.Create(ctx, task); err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", user.ID))

	shared.RespondWithData(w, r, http.StatusCreated, taskToResponse(task))
}

// Update handles PATCH /tasks/{id}. Only the fields present in the request
// body change; absent fields keep their stored values.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	user, ok := getUserFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token supplied")
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, ValidationFieldErrors(err))
		return
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		update.Priority = &priority
	}
	if req.EndDate != nil {
		endDate, err := domain.ParseDate(*req.EndDate)
		if err != nil {
			HandleAPIError(w, r, domain.NewValidationError("endDate",
				"must be a calendar date in YYYY-MM-DD format", domain.ErrInvalidDate), "")
			return
		}
		update.EndDate = &endDate
	}

	task, err := h.taskStore.Update(ctx, user.ID, id, update)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("task updated",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", user.ID))

	shared.RespondWithData(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	user, ok := getUserFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token supplied")
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.Delete(ctx, user.ID, id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("task deleted",
		slog.Int64("task_id", id),
		slog.Int64("user_id", user.ID))

	shared.RespondWithJSON(w, r, http.StatusOK, shared.Envelope{
		Success: true,
		Message: "Task deleted",
	})
}
