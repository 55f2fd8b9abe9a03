package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/pkg/logger"
)

// TaskStore interface for task type catalog operations.
type TaskStore interface {
	Create(task *models.TaskType) error
	GetByID(id string) (*models.TaskType, error)
	List() ([]models.TaskType, error)
	Update(task *models.TaskType) error
	Delete(id string) error
}

// TaskHandler handles the task type catalog.
type TaskHandler struct {
	tasks TaskStore
	log   *logger.Logger
}

// NewTaskHandler creates a new task catalog handler.
func NewTaskHandler(tasks TaskStore, log *logger.Logger) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		log:   log,
	}
}

type taskInput struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Points   int    `json:"points"`
	IsActive *bool  `json:"is_active"`
}

// List returns the task type catalog.
// GET /tasks.
func (h *TaskHandler) List(c *gin.Context) {
	list, err := h.tasks.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list task types")
		errorResponse(c, http.StatusInternalServerError, "Failed to retrieve task types")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create adds a task type to the catalog.
// POST /tasks (admin).
func (h *TaskHandler) Create(c *gin.Context) {
	var input taskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "name is required")
		return
	}
	if input.Points < 0 {
		errorResponse(c, http.StatusBadRequest, "points cannot be negative")
		return
	}

	task := &models.TaskType{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Category: input.Category,
		Points:   input.Points,
		IsActive: true,
	}
	if input.IsActive != nil {
		task.IsActive = *input.IsActive
	}

	if err := h.tasks.Create(task); err != nil {
		h.log.Error().Err(err).Msg("Failed to create task type")
		errorResponse(c, http.StatusInternalServerError, "Failed to create task type")
		return
	}
	c.JSON(http.StatusCreated, task)
}

// Update modifies a task type. Point changes never touch reports already
// submitted against the old value.
// PATCH /tasks/:id (admin).
func (h *TaskHandler) Update(c *gin.Context) {
	task, err := h.tasks.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorResponse(c, http.StatusNotFound, "task type not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to load task type")
		errorResponse(c, http.StatusInternalServerError, "Failed to load task type")
		return
	}

	var input struct {
		Name     *string `json:"name"`
		Category *string `json:"category"`
		Points   *int    `json:"points"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid task payload")
		return
	}

	if input.Name != nil {
		task.Name = *input.Name
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Points != nil {
		if *input.Points < 0 {
			errorResponse(c, http.StatusBadRequest, "points cannot be negative")
			return
		}
		task.Points = *input.Points
	}
	if input.IsActive != nil {
		task.IsActive = *input.IsActive
	}

	if err := h.tasks.Update(task); err != nil {
		h.log.Error().Err(err).Msg("Failed to update task type")
		errorResponse(c, http.StatusInternalServerError, "Failed to update task type")
		return
	}
	c.JSON(http.StatusOK, task)
}

// Delete removes a task type from the catalog. Historical reports keep
// their snapshotted points.
// DELETE /tasks/:id (admin).
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.tasks.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorResponse(c, http.StatusNotFound, "task type not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to delete task type")
		errorResponse(c, http.StatusInternalServerError, "Failed to delete task type")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
