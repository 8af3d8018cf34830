package store

import (
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
)

// Store holds one collection per entity kind. It is built once in main and
// handed to whatever needs it.
type Store struct {
	Users         *Collection[models.User]
	Incidents     *Collection[models.Incident]
	CallLogs      *Collection[models.CallLog]
	Alerts        *Collection[models.Alert]
	SocialTrends  *Collection[models.SocialTrend]
	ResponsePlans *Collection[models.ResponsePlan]

	now func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for creation and update stamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	s.Users = NewCollection(Hooks[models.User]{
		OnCreate: func(u *models.User, id int, now time.Time) {
			u.ID = id
			u.CreatedAt = now
			if u.Role == "" {
				u.Role = models.RoleUser
			}
		},
		OnUpdate: func(prev models.User, next *models.User, _ time.Time) {
			next.ID = prev.ID
			next.CreatedAt = prev.CreatedAt
		},
	}, s.now)

	s.Incidents = NewCollection(Hooks[models.Incident]{
		OnCreate: func(i *models.Incident, id int, now time.Time) {
			i.ID = id
			i.ReportedAt = now
			if i.Status == "" {
				i.Status = models.IncidentActive
			}
			i.MediaLinks = orEmpty(i.MediaLinks)
			i.Tags = orEmpty(i.Tags)
		},
		OnUpdate: func(prev models.Incident, next *models.Incident, _ time.Time) {
			next.ID = prev.ID
			next.ReportedAt = prev.ReportedAt
		},
	}, s.now)

	s.CallLogs = NewCollection(Hooks[models.CallLog]{
		OnCreate: func(l *models.CallLog, id int, now time.Time) {
			l.ID = id
			l.LoggedAt = now
			if l.Status == "" {
				l.Status = models.CallLogPending
			}
			l.ImmediateActions = orEmpty(l.ImmediateActions)
		},
		OnUpdate: func(prev models.CallLog, next *models.CallLog, _ time.Time) {
			next.ID = prev.ID
			next.LoggedAt = prev.LoggedAt
		},
	}, s.now)

	s.Alerts = NewCollection(Hooks[models.Alert]{
		OnCreate: func(a *models.Alert, id int, now time.Time) {
			a.ID = id
			a.CreatedAt = now
			if a.Status == "" {
				a.Status = models.AlertActive
			}
			a.SentTo = orEmpty(a.SentTo)
		},
		OnUpdate: func(prev models.Alert, next *models.Alert, _ time.Time) {
			next.ID = prev.ID
			next.CreatedAt = prev.CreatedAt
		},
	}, s.now)

	s.SocialTrends = NewCollection(Hooks[models.SocialTrend]{
		OnCreate: func(t *models.SocialTrend, id int, now time.Time) {
			t.ID = id
			t.CreatedAt = now
			t.RelatedIncidentTypes = orEmpty(t.RelatedIncidentTypes)
		},
		OnUpdate: func(prev models.SocialTrend, next *models.SocialTrend, _ time.Time) {
			next.ID = prev.ID
			next.CreatedAt = prev.CreatedAt
		},
	}, s.now)

	s.ResponsePlans = NewCollection(Hooks[models.ResponsePlan]{
		OnCreate: func(p *models.ResponsePlan, id int, now time.Time) {
			p.ID = id
			p.CreatedAt = now
			p.UpdatedAt = now
			p.Steps = orEmpty(p.Steps)
			p.ContactAgencies = orEmpty(p.ContactAgencies)
			p.Resources = orEmpty(p.Resources)
		},
		OnUpdate: func(prev models.ResponsePlan, next *models.ResponsePlan, now time.Time) {
			next.ID = prev.ID
			next.CreatedAt = prev.CreatedAt
			next.UpdatedAt = now
		},
	}, s.now)

	return s
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	return s.now()
}

// UserByUsername finds a user by exact username
func (s *Store) UserByUsername(username string) (models.User, bool) {
	var found models.User
	ok := false
	s.Users.Each(func(u models.User) bool {
		if u.Username == username {
			found, ok = u, true
			return false
		}
		return true
	})
	return found, ok
}

func orEmpty[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}
