package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/usss-rp/portal/internal/auth"
	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/pkg/logger"
)

// UserStore interface for member directory operations.
type UserStore interface {
	GetByID(id string) (*models.User, error)
	List() ([]models.User, error)
	Update(user *models.User) error
	Delete(id string) error
}

// UserHandler handles the member directory and profile edits.
type UserHandler struct {
	users UserStore
	log   *logger.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users UserStore, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users: users,
		log:   log,
	}
}

// List returns all members ordered by rank weight.
// GET /users (admin).
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list users")
		errorResponse(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Me returns the current user's profile.
// GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	user := auth.CurrentUser(c)
	// Reload with rank and department preloaded.
	full, err := h.users.GetByID(user.ID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to load profile")
		errorResponse(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, full)
}

type userUpdateInput struct {
	Nickname     *string `json:"nickname"`
	Password     *string `json:"password"`
	StaticID     *string `json:"staticId"`
	Role         *string `json:"role"`
	RankID       *uint   `json:"rank_id"`
	DepartmentID *uint   `json:"department_id"`
}

// Update edits a member profile. Members may edit their own nickname and
// password; role, static id, rank, and department changes are admin-only.
// PATCH /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	actor := auth.CurrentUser(c)
	targetID := c.Param("id")

	if !actor.IsAdmin() && actor.ID != targetID {
		errorResponse(c, http.StatusForbidden, "cannot edit another member's profile")
		return
	}

	target, err := h.users.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorResponse(c, http.StatusNotFound, "user not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to load user")
		errorResponse(c, http.StatusInternalServerError, "Failed to load user")
		return
	}

	var input userUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid user payload")
		return
	}

	if !actor.IsAdmin() && (input.Role != nil || input.StaticID != nil || input.RankID != nil || input.DepartmentID != nil) {
		errorResponse(c, http.StatusForbidden, "only admins may change role, static id, rank, or department")
		return
	}

	if input.Nickname != nil {
		target.Nickname = *input.Nickname
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			errorResponse(c, http.StatusBadRequest, "password must be at least 6 characters")
			return
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to hash password")
			errorResponse(c, http.StatusInternalServerError, "Failed to update password")
			return
		}
		target.Password = hash
	}
	if input.StaticID != nil {
		target.StaticID = *input.StaticID
	}
	if input.Role != nil {
		if *input.Role != models.RoleUser && *input.Role != models.RoleAdmin {
			errorResponse(c, http.StatusBadRequest, "unknown role")
			return
		}
		target.Role = *input.Role
	}
	if input.RankID != nil {
		target.RankID = *input.RankID
		target.Rank = nil
	}
	if input.DepartmentID != nil {
		target.DepartmentID = input.DepartmentID
		target.Department = nil
	}

	if err := h.users.Update(target); err != nil {
		h.log.Error().Err(err).Str("user_id", targetID).Msg("Failed to update user")
		errorResponse(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, target)
}

// Delete removes a member.
// DELETE /users/:id (admin).
func (h *UserHandler) Delete(c *gin.Context) {
	targetID := c.Param("id")
	if err := h.users.Delete(targetID); err != nil {
		h.log.Error().Err(err).Str("user_id", targetID).Msg("Failed to delete user")
		errorResponse(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
