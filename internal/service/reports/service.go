// Package reports implements the activity report lifecycle: submission,
// member edits, and admin review. Points are snapshotted from the task
// type at submission so later task changes never rewrite history.
package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/usss-rp/portal/internal/metrics"
	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/pkg/logger"
)

// ReportStore is the subset of report storage the lifecycle service uses.
type ReportStore interface {
	Create(report *models.Report) error
	GetByID(id string) (*models.Report, error)
	ListAll() ([]models.Report, error)
	ListByUser(userID string) ([]models.Report, error)
	Update(report *models.Report) error
	UpdateStatus(id, status string) (*models.Report, error)
	CountByStatus(status string) (int64, error)
}

// TaskStore resolves task types for point snapshots.
type TaskStore interface {
	GetByID(id string) (*models.TaskType, error)
}

// Syncer pushes the leaderboard to the configured channel. Failures are
// handled inside the syncer; callers fire and move on.
type Syncer interface {
	UpdateLeaderboard(ctx context.Context)
}

// SubmitInput carries a new report submission.
type SubmitInput struct {
	TypeID   string    `json:"typeId" binding:"required"`
	ProofURL string    `json:"proofUrl" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
}

// UpdateInput carries a partial report edit. Nil fields stay unchanged.
type UpdateInput struct {
	TypeID   *string    `json:"typeId"`
	ProofURL *string    `json:"proofUrl"`
	Date     *time.Time `json:"date"`
}

// Service manages the report lifecycle.
type Service struct {
	reports ReportStore
	tasks   TaskStore
	syncer  Syncer
	log     *logger.Logger
}

// NewService creates a new report lifecycle service.
func NewService(reports ReportStore, tasks TaskStore, syncer Syncer, log *logger.Logger) *Service {
	return &Service{
		reports: reports,
		tasks:   tasks,
		syncer:  syncer,
		log:     log,
	}
}

// Submit records a new PENDING report for the user, snapshotting the task
// type's current point value.
func (s *Service) Submit(ctx context.Context, userID string, input SubmitInput) (*models.Report, error) {
	if strings.TrimSpace(input.ProofURL) == "" {
		return nil, fmt.Errorf("%w: proof URL is required", models.ErrValidation)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: report date is required", models.ErrValidation)
	}

	task, err := s.tasks.GetByID(input.TypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task type %s", models.ErrNotFound, input.TypeID)
		}
		return nil, fmt.Errorf("failed to resolve task type: %w", err)
	}

	report := &models.Report{
		ID:       uuid.NewString(),
		UserID:   userID,
		TypeID:   task.ID,
		ProofURL: input.ProofURL,
		Date:     input.Date,
		Points:   task.Points,
		Status:   models.StatusPending,
	}

	if err := s.reports.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	metrics.RecordReportSubmitted(task.Category)
	s.refreshPendingGauge()

	s.log.Info().
		Str("report_id", report.ID).
		Str("user_id", userID).
		Str("task", task.Name).
		Int("points", report.Points).
		Msg("Report submitted")

	return report, nil
}

// ListAll returns every report, newest first.
func (s *Service) ListAll() ([]models.Report, error) {
	reports, err := s.reports.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// ListMine returns the user's own reports, newest first.
func (s *Service) ListMine(userID string) ([]models.Report, error) {
	reports, err := s.reports.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports for user %s: %w", userID, err)
	}
	return reports, nil
}

// Update applies a partial edit to a report. Non-admins may edit only
// their own PENDING reports; a foreign report reads as missing rather
// than forbidden. Changing the task type re-snapshots the point value.
// Editing an already approved report pushes a fresh leaderboard.
func (s *Service) Update(ctx context.Context, actor *models.User, reportID string, input UpdateInput) (*models.Report, error) {
	report, err := s.reports.GetByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report %s", models.ErrNotFound, reportID)
		}
		return nil, fmt.Errorf("failed to load report %s: %w", reportID, err)
	}

	if !actor.IsAdmin() {
		if report.UserID != actor.ID {
			// Do not reveal that the report exists.
			return nil, fmt.Errorf("%w: report %s", models.ErrNotFound, reportID)
		}
		if report.Status != models.StatusPending {
			return nil, fmt.Errorf("%w: only pending reports can be edited", models.ErrForbidden)
		}
	}

	wasApproved := report.Status == models.StatusApproved

	if input.TypeID != nil && *input.TypeID != report.TypeID {
		task, err := s.tasks.GetByID(*input.TypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: task type %s", models.ErrNotFound, *input.TypeID)
			}
			return nil, fmt.Errorf("failed to resolve task type: %w", err)
		}
		report.TypeID = task.ID
		report.Points = task.Points
	}
	if input.ProofURL != nil {
		if strings.TrimSpace(*input.ProofURL) == "" {
			return nil, fmt.Errorf("%w: proof URL cannot be empty", models.ErrValidation)
		}
		report.ProofURL = *input.ProofURL
	}
	if input.Date != nil {
		report.Date = *input.Date
	}

	if err := s.reports.Update(report); err != nil {
		return nil, fmt.Errorf("failed to update report %s: %w", reportID, err)
	}

	s.log.Info().
		Str("report_id", report.ID).
		Str("actor_id", actor.ID).
		Bool("was_approved", wasApproved).
		Msg("Report updated")

	if wasApproved {
		s.syncer.UpdateLeaderboard(ctx)
	}

	return report, nil
}

// UpdateStatus transitions a report to the given status and pushes a
// fresh leaderboard to the channel.
func (s *Service) UpdateStatus(ctx context.Context, reportID, status string) (*models.Report, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrValidation, status)
	}

	report, err := s.reports.UpdateStatus(reportID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report %s", models.ErrNotFound, reportID)
		}
		return nil, fmt.Errorf("failed to update status of report %s: %w", reportID, err)
	}

	metrics.RecordStatusChange(status)
	s.refreshPendingGauge()

	s.log.Info().
		Str("report_id", report.ID).
		Str("status", status).
		Msg("Report status changed")

	s.syncer.UpdateLeaderboard(ctx)

	return report, nil
}

func (s *Service) refreshPendingGauge() {
	count, err := s.reports.CountByStatus(models.StatusPending)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to refresh pending report gauge")
		return
	}
	metrics.SetPendingReports(count)
}
