package repository

import (
	"fmt"

	"github.com/usss-rp/portal/internal/models"
)

// UserRepository handles user-related database operations.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user.
func (r *UserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID with rank and department preloaded.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Rank").Preload("Department").
		Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id %s: %w", id, err)
	}
	return &user, nil
}

// GetByStaticID retrieves a user by their unique static identifier.
func (r *UserRepository) GetByStaticID(staticID string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Rank").Preload("Department").
		Where("static_id = ?", staticID).First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user by static_id %s: %w", staticID, err)
	}
	return &user, nil
}

// List retrieves all users ordered by rank weight, heaviest first.
func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Preload("Rank").Preload("Department").
		Joins("LEFT JOIN ranks ON ranks.id = users.rank_id").
		Order("ranks.weight DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListWithApprovedReports retrieves all users with their approved reports,
// rank, and department preloaded. Feeds the leaderboard builder.
func (r *UserRepository) ListWithApprovedReports() ([]models.User, error) {
	var users []models.User
	err := r.db.
		Preload("Reports", "status = ?", models.StatusApproved).
		Preload("Rank").
		Preload("Department").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users with reports: %w", err)
	}
	return users, nil
}

// Update updates a user.
func (r *UserRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
