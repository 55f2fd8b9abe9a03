package repository

import (
	"fmt"

	"github.com/usss-rp/portal/internal/models"
)

// RankRepository handles rank database operations.
type RankRepository struct {
	db *DB
}

// NewRankRepository creates a new rank repository.
func NewRankRepository(db *DB) *RankRepository {
	return &RankRepository{db: db}
}

// Create creates a new rank.
func (r *RankRepository) Create(rank *models.Rank) error {
	if err := r.db.Create(rank).Error; err != nil {
		return fmt.Errorf("failed to create rank: %w", err)
	}
	return nil
}

// GetByID retrieves a rank by ID.
func (r *RankRepository) GetByID(id uint) (*models.Rank, error) {
	var rank models.Rank
	if err := r.db.First(&rank, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get rank by id %d: %w", id, err)
	}
	return &rank, nil
}

// List retrieves all ranks ordered by weight, lightest first.
func (r *RankRepository) List() ([]models.Rank, error) {
	var ranks []models.Rank
	if err := r.db.Order("weight ASC").Find(&ranks).Error; err != nil {
		return nil, fmt.Errorf("failed to list ranks: %w", err)
	}
	return ranks, nil
}

// Update updates a rank.
func (r *RankRepository) Update(rank *models.Rank) error {
	if err := r.db.Save(rank).Error; err != nil {
		return fmt.Errorf("failed to update rank: %w", err)
	}
	return nil
}

// Delete removes a rank by ID.
func (r *RankRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Rank{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete rank %d: %w", id, err)
	}
	return nil
}

// DepartmentRepository handles department database operations.
type DepartmentRepository struct {
	db *DB
}

// NewDepartmentRepository creates a new department repository.
func NewDepartmentRepository(db *DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Create creates a new department.
func (r *DepartmentRepository) Create(dept *models.Department) error {
	if err := r.db.Create(dept).Error; err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

// List retrieves all departments ordered by ID.
func (r *DepartmentRepository) List() ([]models.Department, error) {
	var depts []models.Department
	if err := r.db.Order("id ASC").Find(&depts).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, nil
}

// Update updates a department.
func (r *DepartmentRepository) Update(dept *models.Department) error {
	if err := r.db.Save(dept).Error; err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}
	return nil
}

// Delete removes a department by ID.
func (r *DepartmentRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Department{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete department %d: %w", id, err)
	}
	return nil
}
