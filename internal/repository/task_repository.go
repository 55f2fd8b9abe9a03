package repository

import (
	"fmt"

	"github.com/usss-rp/portal/internal/models"
)

// TaskRepository handles task-type database operations.
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task type.
func (r *TaskRepository) Create(task *models.TaskType) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task type: %w", err)
	}
	return nil
}

// GetByID retrieves a task type by ID.
func (r *TaskRepository) GetByID(id string) (*models.TaskType, error) {
	var task models.TaskType
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to get task type by id %s: %w", id, err)
	}
	return &task, nil
}

// List retrieves all task types.
func (r *TaskRepository) List() ([]models.TaskType, error) {
	var tasks []models.TaskType
	if err := r.db.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list task types: %w", err)
	}
	return tasks, nil
}

// Update updates a task type.
func (r *TaskRepository) Update(task *models.TaskType) error {
	if err := r.db.Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task type: %w", err)
	}
	return nil
}

// Delete removes a task type. Historical reports keep their snapshotted
// points; nothing cascades.
func (r *TaskRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&models.TaskType{}).Error; err != nil {
		return fmt.Errorf("failed to delete task type %s: %w", id, err)
	}
	return nil
}
