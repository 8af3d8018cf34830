package services

import (
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/store"
)

// StatsService computes the dashboard summary
type StatsService struct {
	store *store.Store
}

// NewStatsService creates a new stats service
func NewStatsService(st *store.Store) *StatsService {
	return &StatsService{store: st}
}

// Compute recalculates the summary from the current store contents.
// "Today" is the server's local calendar date.
func (s *StatsService) Compute() models.Stats {
	var stats models.Stats
	today := dayOf(s.store.Now())

	s.store.Incidents.Each(func(i models.Incident) bool {
		switch i.Status {
		case models.IncidentActive:
			stats.ActiveIncidents++
		case models.IncidentResolved:
			stats.ResolvedIncidents++
		}
		if dayOf(i.ReportedAt) == today {
			stats.NewReportsToday++
		}
		return true
	})
	stats.SocialMediaAlerts = s.store.SocialTrends.Len()

	return stats
}

func dayOf(t time.Time) string {
	return t.Local().Format(time.DateOnly)
}
