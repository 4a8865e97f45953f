package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/taskboard/api/http/presenter"
	"github.com/artem13815/taskboard/pkg/security/credentials"
	"github.com/artem13815/taskboard/pkg/tasks"
)

type TaskHandler struct {
	uc tasks.UseCase
}

func NewTaskHandler(uc tasks.UseCase) *TaskHandler { return &TaskHandler{uc: uc} }

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// ownerID pulls the authenticated identity set by the auth middleware.
func ownerID(c *fiber.Ctx) (uuid.UUID, error) {
	idStr, _ := c.Locals(credentials.LocalUserID).(string)
	return uuid.Parse(idStr)
}

// Create persists a new task owned by the caller.
// @Summary Create task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   input body createTaskRequest true "task fields"
// @Security BearerAuth
// @Success 201 {object} tasks.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "Invalid or expired token")
	}
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	t, err := h.uc.Create(c.Context(), uid, tasks.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		var ve tasks.ErrValidation
		if errors.As(err, &ve) {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "Failed to create task")
	}
	return presenter.JSON(c, http.StatusCreated, t)
}

// List returns the caller's tasks, newest first.
// @Summary List tasks
// @Tags    tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} tasks.Task
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "Invalid or expired token")
	}
	list, err := h.uc.ListByOwner(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "Failed to list tasks")
	}
	if list == nil {
		list = []tasks.Task{}
	}
	return presenter.JSON(c, http.StatusOK, list)
}

// GetByID returns one of the caller's tasks.
// @Summary Get task by ID
// @Tags    tasks
// @Produce json
// @Param   id path string true "task ID"
// @Security BearerAuth
// @Success 200 {object} tasks.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "Invalid or expired token")
	}
	id, err := tasks.ParseID(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid task id")
	}
	t, err := h.uc.GetOwned(c.Context(), uid, id)
	if err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Task not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "Failed to get task")
	}
	return presenter.JSON(c, http.StatusOK, t)
}

// Update applies a partial update to one of the caller's tasks.
// @Summary Update task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   id path string true "task ID"
// @Param   input body updateTaskRequest true "fields to change"
// @Security BearerAuth
// @Success 200 {object} tasks.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [patch]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "Invalid or expired token")
	}
	id, err := tasks.ParseID(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid task id")
	}
	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	t, err := h.uc.UpdateOwned(c.Context(), uid, id, tasks.Patch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		var ve tasks.ErrValidation
		switch {
		case errors.As(err, &ve):
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, tasks.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "Task not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "Failed to update task")
		}
	}
	return presenter.JSON(c, http.StatusOK, t)
}

// Delete removes one of the caller's tasks.
// @Summary Delete task
// @Tags    tasks
// @Produce json
// @Param   id path string true "task ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "Invalid or expired token")
	}
	id, err := tasks.ParseID(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid task id")
	}
	if err := h.uc.DeleteOwned(c.Context(), uid, id); err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Task not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "Failed to delete task")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "Task deleted"})
}
