package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/pkg/logger"
)

// RankStore interface for rank catalog operations.
type RankStore interface {
	Create(rank *models.Rank) error
	GetByID(id uint) (*models.Rank, error)
	List() ([]models.Rank, error)
	Update(rank *models.Rank) error
	Delete(id uint) error
}

// DepartmentStore interface for department catalog operations.
type DepartmentStore interface {
	Create(dept *models.Department) error
	List() ([]models.Department, error)
	Update(dept *models.Department) error
	Delete(id uint) error
}

// ReferenceHandler handles the rank and department catalogs.
type ReferenceHandler struct {
	ranks       RankStore
	departments DepartmentStore
	log         *logger.Logger
}

// NewReferenceHandler creates a new reference catalog handler.
func NewReferenceHandler(ranks RankStore, departments DepartmentStore, log *logger.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		ranks:       ranks,
		departments: departments,
		log:         log,
	}
}

// ListRanks returns all ranks, lowest weight first.
// GET /ranks.
func (h *ReferenceHandler) ListRanks(c *gin.Context) {
	ranks, err := h.ranks.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list ranks")
		errorResponse(c, http.StatusInternalServerError, "Failed to retrieve ranks")
		return
	}
	c.JSON(http.StatusOK, ranks)
}

// CreateRank adds a rank.
// POST /ranks (admin).
func (h *ReferenceHandler) CreateRank(c *gin.Context) {
	var input struct {
		Name   string `json:"name" binding:"required"`
		Weight int    `json:"weight"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "name is required")
		return
	}

	rank := &models.Rank{Name: input.Name, Weight: input.Weight}
	if err := h.ranks.Create(rank); err != nil {
		h.log.Error().Err(err).Msg("Failed to create rank")
		errorResponse(c, http.StatusInternalServerError, "Failed to create rank")
		return
	}
	c.JSON(http.StatusCreated, rank)
}

// UpdateRank modifies a rank.
// PATCH /ranks/:id (admin).
func (h *ReferenceHandler) UpdateRank(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	rank, err := h.ranks.GetByID(id)
	if err != nil {
		errorResponse(c, http.StatusNotFound, "rank not found")
		return
	}

	var input struct {
		Name   *string `json:"name"`
		Weight *int    `json:"weight"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid rank payload")
		return
	}
	if input.Name != nil {
		rank.Name = *input.Name
	}
	if input.Weight != nil {
		rank.Weight = *input.Weight
	}

	if err := h.ranks.Update(rank); err != nil {
		h.log.Error().Err(err).Msg("Failed to update rank")
		errorResponse(c, http.StatusInternalServerError, "Failed to update rank")
		return
	}
	c.JSON(http.StatusOK, rank)
}

// DeleteRank removes a rank.
// DELETE /ranks/:id (admin).
func (h *ReferenceHandler) DeleteRank(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ranks.Delete(id); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete rank")
		errorResponse(c, http.StatusInternalServerError, "Failed to delete rank")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListDepartments returns all departments.
// GET /departments.
func (h *ReferenceHandler) ListDepartments(c *gin.Context) {
	depts, err := h.departments.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list departments")
		errorResponse(c, http.StatusInternalServerError, "Failed to retrieve departments")
		return
	}
	c.JSON(http.StatusOK, depts)
}

// CreateDepartment adds a department.
// POST /departments (admin).
func (h *ReferenceHandler) CreateDepartment(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "name is required")
		return
	}

	dept := &models.Department{Name: input.Name}
	if err := h.departments.Create(dept); err != nil {
		h.log.Error().Err(err).Msg("Failed to create department")
		errorResponse(c, http.StatusInternalServerError, "Failed to create department")
		return
	}
	c.JSON(http.StatusCreated, dept)
}

// UpdateDepartment renames a department.
// PATCH /departments/:id (admin).
func (h *ReferenceHandler) UpdateDepartment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		errorResponse(c, http.StatusBadRequest, "name is required")
		return
	}

	dept := &models.Department{ID: id, Name: input.Name}
	if err := h.departments.Update(dept); err != nil {
		h.log.Error().Err(err).Msg("Failed to update department")
		errorResponse(c, http.StatusInternalServerError, "Failed to update department")
		return
	}
	c.JSON(http.StatusOK, dept)
}

// DeleteDepartment removes a department.
// DELETE /departments/:id (admin).
func (h *ReferenceHandler) DeleteDepartment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.departments.Delete(id); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete department")
		errorResponse(c, http.StatusInternalServerError, "Failed to delete department")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// parseUintParam parses a numeric path parameter.
func parseUintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %s", name, raw)
	}
	return uint(id), nil
}
