// Package leaderboard builds ranked contributor summaries and renders them
// as fixed-width message blocks for the Discord mirror.
package leaderboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/internal/service/period"
	"github.com/usss-rp/portal/pkg/logger"
)

// UserSource is the subset of user storage the leaderboard reads.
type UserSource interface {
	ListWithApprovedReports() ([]models.User, error)
}

// Entry is one contributor's ranked summary.
type Entry struct {
	Name        string `json:"name"`
	StaticID    string `json:"staticId"`
	RankName    string `json:"rank"`
	DeptName    string `json:"dept"`
	PointsDay   int    `json:"pointsDay"`
	PointsWeek  int    `json:"pointsWeek"`
	PointsTotal int    `json:"pointsTotal"`
}

// Service produces leaderboard entries from stored users and reports.
type Service struct {
	users UserSource
	log   *logger.Logger
}

// NewService creates a new leaderboard service.
func NewService(users UserSource, log *logger.Logger) *Service {
	return &Service{users: users, log: log}
}

// Entries returns every contributor's day/week/total approved point sums,
// sorted descending by total. Ties keep their original order.
func (s *Service) Entries(now time.Time) ([]Entry, error) {
	users, err := s.users.ListWithApprovedReports()
	if err != nil {
		return nil, fmt.Errorf("failed to load users for leaderboard: %w", err)
	}

	entries := BuildEntries(users, now)

	s.log.Debug().
		Int("entries", len(entries)).
		Msg("Built leaderboard entries")

	return entries, nil
}

// BuildEntries computes the ranked summaries for a set of users whose
// Reports collections hold their approved reports.
func BuildEntries(users []models.User, now time.Time) []Entry {
	dayStart, _ := period.DayWindow(now)
	weekStart, _ := period.WeekWindow(now, 0)

	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		e := Entry{
			Name:     u.Nickname,
			StaticID: u.StaticID,
			RankName: "Unk",
			DeptName: "-",
		}
		if u.Rank != nil {
			e.RankName = u.Rank.Name
		}
		if u.Department != nil {
			e.DeptName = u.Department.Name
		}

		for _, r := range u.Reports {
			if r.Status != models.StatusApproved {
				continue
			}
			e.PointsTotal += r.Points
			if !r.Date.Before(weekStart) {
				e.PointsWeek += r.Points
			}
			if !r.Date.Before(dayStart) {
				e.PointsDay += r.Points
			}
		}

		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PointsTotal > entries[j].PointsTotal
	})

	return entries
}
