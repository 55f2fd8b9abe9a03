// Package stats computes per-user and organization-wide point statistics
// from report histories. All aggregations are total: empty input produces
// zero-valued results, never an error.
package stats

import (
	"fmt"
	"time"

	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/internal/service/period"
	"github.com/usss-rp/portal/pkg/logger"
)

// ReportSource is the subset of report storage the stats service reads.
type ReportSource interface {
	ListByUser(userID string) ([]models.Report, error)
	CountByStatus(status string) (int64, error)
	CountApprovedUpdatedSince(since time.Time) (int64, error)
	CountDistinctContributorsSince(since time.Time) (int64, error)
	ListApprovedByDateSince(since time.Time) ([]models.Report, error)
}

// ChartPoint is one labelled entry of a daily point series.
type ChartPoint struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// UserStats holds a user's aggregated point statistics for a selected week.
type UserStats struct {
	PointsDay   int          `json:"pointsDay"`
	PointsWeek  int          `json:"pointsWeek"`
	PointsTotal int          `json:"pointsTotal"`
	Pending     int          `json:"pending"`
	Rejected    int          `json:"rejected"`
	Chart       []ChartPoint `json:"chartData"`
	WeekStart   time.Time    `json:"weekStart"`
	WeekEnd     time.Time    `json:"weekEnd"`
}

// OrgStats holds organization-wide counters and the trailing 7-day series.
type OrgStats struct {
	PendingCount  int          `json:"pendingCount"`
	ApprovedToday int          `json:"approvedToday"`
	ActiveAgents  int          `json:"activeAgents"`
	Chart         []ChartPoint `json:"chartData"`
}

// Service computes user and org statistics on demand. Reads are always
// fresh; nothing is cached.
type Service struct {
	reports ReportSource
	lang    string
	log     *logger.Logger
}

// NewService creates a new stats service.
func NewService(reports ReportSource, lang string, log *logger.Logger) *Service {
	return &Service{
		reports: reports,
		lang:    lang,
		log:     log,
	}
}

// UserStats returns the dashboard statistics for a user and week offset.
// Offset 0 is the current week, 1 the previous one, and so on.
func (s *Service) UserStats(userID string, weekOffset int) (*UserStats, error) {
	reports, err := s.reports.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports for user %s: %w", userID, err)
	}

	stats := ComputeUserStats(reports, weekOffset, time.Now(), s.lang)

	s.log.Debug().
		Str("user_id", userID).
		Int("week_offset", weekOffset).
		Int("points_week", stats.PointsWeek).
		Int("points_total", stats.PointsTotal).
		Msg("Computed user stats")

	return stats, nil
}

// ComputeUserStats aggregates a user's full report history against the week
// window selected by weekOffset. Only APPROVED reports contribute to point
// sums; pending and rejected counts cover the whole history. PointsDay is
// defined as 0 for any non-zero offset: "today" is meaningless for a past
// week, and that policy is deliberate.
func ComputeUserStats(reports []models.Report, weekOffset int, now time.Time, lang string) *UserStats {
	weekStart, weekEnd := period.WeekWindow(now, weekOffset)
	dayStart, _ := period.DayWindow(now)

	stats := &UserStats{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
	}

	var approved []models.Report
	for _, r := range reports {
		switch r.Status {
		case models.StatusApproved:
			approved = append(approved, r)
		case models.StatusPending:
			stats.Pending++
		case models.StatusRejected:
			stats.Rejected++
		}
	}

	for _, r := range approved {
		stats.PointsTotal += r.Points
		if inWindow(r.Date, weekStart, weekEnd) {
			stats.PointsWeek += r.Points
		}
		if weekOffset == 0 && !r.Date.Before(dayStart) {
			stats.PointsDay += r.Points
		}
	}

	stats.Chart = make([]ChartPoint, 0, 7)
	for i := 0; i < 7; i++ {
		dStart := weekStart.AddDate(0, 0, i)
		dEnd := dStart.AddDate(0, 0, 1)

		points := 0
		for _, r := range approved {
			if inWindow(r.Date, dStart, dEnd) {
				points += r.Points
			}
		}

		stats.Chart = append(stats.Chart, ChartPoint{
			Name:   period.WeekdayShort(dStart, lang),
			Points: points,
		})
	}

	return stats
}

// OrgStats returns organization-wide statistics as of now.
func (s *Service) OrgStats(now time.Time) (*OrgStats, error) {
	pending, err := s.reports.CountByStatus(models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending reports: %w", err)
	}

	// Approval time is approximated by the last-modified timestamp; a
	// post-approval edit shifts it. Known imprecision, kept on purpose.
	dayStart, _ := period.DayWindow(now)
	approvedToday, err := s.reports.CountApprovedUpdatedSince(dayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count approvals today: %w", err)
	}

	weekAgo := now.AddDate(0, 0, -7)
	activeAgents, err := s.reports.CountDistinctContributorsSince(weekAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to count active contributors: %w", err)
	}

	recent, err := s.reports.ListApprovedByDateSince(weekAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent approved reports: %w", err)
	}

	stats := &OrgStats{
		PendingCount:  int(pending),
		ApprovedToday: int(approvedToday),
		ActiveAgents:  int(activeAgents),
		Chart:         ComputeTrailingSeries(recent, now, s.lang),
	}

	s.log.Debug().
		Int("pending", stats.PendingCount).
		Int("approved_today", stats.ApprovedToday).
		Int("active_agents", stats.ActiveAgents).
		Msg("Computed org stats")

	return stats, nil
}

// ComputeTrailingSeries buckets approved points by event date over the
// trailing 7 calendar days, oldest first.
func ComputeTrailingSeries(approved []models.Report, now time.Time, lang string) []ChartPoint {
	chart := make([]ChartPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		dStart, dEnd := period.DayWindow(now.AddDate(0, 0, -i))

		points := 0
		for _, r := range approved {
			if inWindow(r.Date, dStart, dEnd) {
				points += r.Points
			}
		}

		chart = append(chart, ChartPoint{
			Name:   period.WeekdayShort(dStart, lang),
			Points: points,
		})
	}
	return chart
}

// inWindow reports whether t falls in the half-open interval [start, end).
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
