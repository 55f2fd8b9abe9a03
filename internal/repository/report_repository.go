package repository

import (
	"fmt"
	"time"

	"github.com/usss-rp/portal/internal/models"
)

// ReportRepository handles report-related database operations.
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create creates a new report.
func (r *ReportRepository) Create(report *models.Report) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID retrieves a report by ID.
func (r *ReportRepository) GetByID(id string) (*models.Report, error) {
	var report models.Report
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to get report by id %s: %w", id, err)
	}
	return &report, nil
}

// ListAll retrieves every report with owner and type preloaded, newest first.
func (r *ReportRepository) ListAll() ([]models.Report, error) {
	var reports []models.Report
	err := r.db.
		Preload("User").
		Preload("User.Rank").
		Preload("Type").
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// ListByUser retrieves a user's reports with their types, newest first.
func (r *ReportRepository) ListByUser(userID string) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.
		Preload("Type").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports for user %s: %w", userID, err)
	}
	return reports, nil
}

// Update updates a report.
func (r *ReportRepository) Update(report *models.Report) error {
	if err := r.db.Save(report).Error; err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	return nil
}

// UpdateStatus sets a report's status and returns the updated record.
func (r *ReportRepository) UpdateStatus(id, status string) (*models.Report, error) {
	report, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	report.Status = status
	if err := r.Update(report); err != nil {
		return nil, err
	}
	return report, nil
}

// CountByStatus counts reports in a given status, org-wide.
func (r *ReportRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reports by status %s: %w", status, err)
	}
	return count, nil
}

// CountApprovedUpdatedSince counts approved reports whose last-modified
// timestamp falls at or after since. UpdatedAt stands in for an approval
// time the schema does not record.
func (r *ReportRepository) CountApprovedUpdatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Where("status = ? AND updated_at >= ?", models.StatusApproved, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count approvals since %s: %w", since, err)
	}
	return count, nil
}

// CountDistinctContributorsSince counts distinct users with at least one
// report (any status) whose event date falls at or after since.
func (r *ReportRepository) CountDistinctContributorsSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Where("date >= ?", since).
		Distinct("user_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct contributors: %w", err)
	}
	return count, nil
}

// ListApprovedByDateSince retrieves approved reports whose event date falls
// at or after since.
func (r *ReportRepository) ListApprovedByDateSince(since time.Time) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.
		Where("status = ? AND date >= ?", models.StatusApproved, since).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list approved reports since %s: %w", since, err)
	}
	return reports, nil
}
