package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/pkg/logger"
)

// Thursday Sep 4 2025; its week runs Mon Sep 1 .. Mon Sep 8.
var testNow = time.Date(2025, 9, 4, 15, 30, 0, 0, time.UTC)

func report(date time.Time, points int, status string) models.Report {
	return models.Report{
		UserID: "u1",
		Date:   date,
		Points: points,
		Status: status,
	}
}

func TestComputeUserStatsEmpty(t *testing.T) {
	for _, offset := range []int{0, 1, 5} {
		stats := ComputeUserStats(nil, offset, testNow, "en")

		assert.Equal(t, 0, stats.PointsDay)
		assert.Equal(t, 0, stats.PointsWeek)
		assert.Equal(t, 0, stats.PointsTotal)
		assert.Equal(t, 0, stats.Pending)
		assert.Equal(t, 0, stats.Rejected)
		assert.Len(t, stats.Chart, 7)
		for _, p := range stats.Chart {
			assert.Equal(t, 0, p.Points)
		}
	}
}

func TestComputeUserStatsCurrentWeek(t *testing.T) {
	monday := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 9, 3, 9, 0, 0, 0, time.UTC)
	thursday := time.Date(2025, 9, 4, 10, 0, 0, 0, time.UTC)

	reports := []models.Report{
		report(monday, 10, models.StatusApproved),
		report(wednesday, 5, models.StatusApproved),
		report(thursday, 99, models.StatusPending),
	}

	stats := ComputeUserStats(reports, 0, testNow, "en")

	assert.Equal(t, 15, stats.PointsWeek)
	assert.Equal(t, 15, stats.PointsTotal)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 0, stats.Rejected)

	assert.Len(t, stats.Chart, 7)
	assert.Equal(t, "Mon", stats.Chart[0].Name)
	assert.Equal(t, 10, stats.Chart[0].Points)
	assert.Equal(t, 5, stats.Chart[2].Points)
	for _, i := range []int{1, 3, 4, 5, 6} {
		assert.Equal(t, 0, stats.Chart[i].Points, "chart day %d", i)
	}
}

func TestComputeUserStatsPointsDayOnlyCurrentWeek(t *testing.T) {
	today := time.Date(2025, 9, 4, 8, 0, 0, 0, time.UTC)
	lastThursday := time.Date(2025, 8, 28, 8, 0, 0, 0, time.UTC)

	reports := []models.Report{
		report(today, 7, models.StatusApproved),
		report(lastThursday, 3, models.StatusApproved),
	}

	current := ComputeUserStats(reports, 0, testNow, "en")
	assert.Equal(t, 7, current.PointsDay)
	assert.Equal(t, 7, current.PointsWeek)
	assert.Equal(t, 10, current.PointsTotal)

	// For a past week "today" is meaningless: PointsDay is 0 by policy,
	// while the total still spans all history.
	previous := ComputeUserStats(reports, 1, testNow, "en")
	assert.Equal(t, 0, previous.PointsDay)
	assert.Equal(t, 3, previous.PointsWeek)
	assert.Equal(t, 10, previous.PointsTotal)
}

func TestComputeUserStatsCountsSpanHistory(t *testing.T) {
	longAgo := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	reports := []models.Report{
		report(longAgo, 4, models.StatusApproved),
		report(longAgo, 1, models.StatusPending),
		report(longAgo, 2, models.StatusRejected),
		report(longAgo, 6, models.StatusRejected),
	}

	stats := ComputeUserStats(reports, 0, testNow, "en")

	assert.Equal(t, 4, stats.PointsTotal)
	assert.Equal(t, 0, stats.PointsWeek)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.Rejected)
}

func TestComputeUserStatsWindowBoundaries(t *testing.T) {
	weekStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)

	reports := []models.Report{
		report(weekStart, 2, models.StatusApproved),                // inclusive lower bound
		report(weekEnd, 8, models.StatusApproved),                  // exclusive upper bound
		report(weekEnd.Add(-time.Second), 5, models.StatusApproved), // last second of Sunday
	}

	stats := ComputeUserStats(reports, 0, testNow, "en")

	assert.Equal(t, 7, stats.PointsWeek)
	assert.Equal(t, 15, stats.PointsTotal)
	assert.Equal(t, 5, stats.Chart[6].Points) // Sunday bucket
}

func TestComputeTrailingSeries(t *testing.T) {
	reports := []models.Report{
		report(testNow.AddDate(0, 0, -6), 3, models.StatusApproved),
		report(testNow.AddDate(0, 0, -1), 4, models.StatusApproved),
		report(testNow, 9, models.StatusApproved),
	}

	chart := ComputeTrailingSeries(reports, testNow, "en")

	assert.Len(t, chart, 7)
	assert.Equal(t, 3, chart[0].Points) // oldest day first
	assert.Equal(t, 4, chart[5].Points)
	assert.Equal(t, 9, chart[6].Points)
	assert.Equal(t, "Thu", chart[6].Name)
}

// mockReportSource backs the service-level tests.
type mockReportSource struct {
	byUser        map[string][]models.Report
	pending       int64
	approvedToday int64
	contributors  int64
	recent        []models.Report
}

func (m *mockReportSource) ListByUser(userID string) ([]models.Report, error) {
	return m.byUser[userID], nil
}

func (m *mockReportSource) CountByStatus(string) (int64, error) {
	return m.pending, nil
}

func (m *mockReportSource) CountApprovedUpdatedSince(time.Time) (int64, error) {
	return m.approvedToday, nil
}

func (m *mockReportSource) CountDistinctContributorsSince(time.Time) (int64, error) {
	return m.contributors, nil
}

func (m *mockReportSource) ListApprovedByDateSince(time.Time) ([]models.Report, error) {
	return m.recent, nil
}

func TestOrgStats(t *testing.T) {
	src := &mockReportSource{
		pending:       4,
		approvedToday: 2,
		contributors:  3,
		recent: []models.Report{
			report(testNow, 12, models.StatusApproved),
		},
	}
	svc := NewService(src, "en", logger.New("debug", "json", "stdout"))

	stats, err := svc.OrgStats(testNow)
	assert.NoError(t, err)
	assert.Equal(t, 4, stats.PendingCount)
	assert.Equal(t, 2, stats.ApprovedToday)
	assert.Equal(t, 3, stats.ActiveAgents)
	assert.Len(t, stats.Chart, 7)
	assert.Equal(t, 12, stats.Chart[6].Points)
}

func TestUserStatsService(t *testing.T) {
	src := &mockReportSource{
		byUser: map[string][]models.Report{
			"u1": {report(testNow, 5, models.StatusApproved)},
		},
	}
	svc := NewService(src, "en", logger.New("debug", "json", "stdout"))

	stats, err := svc.UserStats("u1", 0)
	assert.NoError(t, err)
	assert.Equal(t, 5, stats.PointsTotal)

	// Unknown user: zero stats, not an error.
	empty, err := svc.UserStats("nobody", 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, empty.PointsTotal)
	assert.Len(t, empty.Chart, 7)
}
