package handlers

import (
	"net/http"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/middleware"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/services"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/store"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/validation"
	"go.uber.org/zap"
)

// currentUserID is the authenticated caller, or 0 outside RequireAuth
func currentUserID(r *http.Request) int {
	if u, ok := middleware.UserFromContext(r.Context()); ok {
		return u.ID
	}
	return 0
}

// broadcast wraps Publish with a log line
func broadcast(pub services.Publisher, logger *zap.SugaredLogger, msgType string, id int, data any) {
	reached := pub.Publish(msgType, data)
	logger.Debugw("Broadcast", "type", msgType, "id", id, "clients", reached)
}

// NewIncidentHandler serves /api/incidents and pushes changes to subscribers
func NewIncidentHandler(st *store.Store, pub services.Publisher, logger *zap.SugaredLogger) *Resource[models.Incident] {
	h := NewResource("Incident", st.Incidents, validation.Incidents, logger)
	h.prepare = func(r *http.Request, i *models.Incident) { i.ReportedBy = currentUserID(r) }
	h.created = func(i models.Incident) { broadcast(pub, logger, models.MessageNewIncident, i.ID, i) }
	h.updated = func(i models.Incident) { broadcast(pub, logger, models.MessageUpdateIncident, i.ID, i) }
	return h
}

// NewCallLogHandler serves /api/call-logs
func NewCallLogHandler(st *store.Store, logger *zap.SugaredLogger) *Resource[models.CallLog] {
	h := NewResource("Call log", st.CallLogs, validation.CallLogs, logger)
	h.prepare = func(r *http.Request, l *models.CallLog) { l.LoggedBy = currentUserID(r) }
	return h
}

// NewAlertHandler serves /api/alerts and pushes changes to subscribers
func NewAlertHandler(st *store.Store, pub services.Publisher, logger *zap.SugaredLogger) *Resource[models.Alert] {
	h := NewResource("Alert", st.Alerts, validation.Alerts, logger)
	h.created = func(a models.Alert) { broadcast(pub, logger, models.MessageNewAlert, a.ID, a) }
	h.updated = func(a models.Alert) { broadcast(pub, logger, models.MessageUpdateAlert, a.ID, a) }
	return h
}

// NewSocialTrendHandler serves /api/social-trends
func NewSocialTrendHandler(st *store.Store, logger *zap.SugaredLogger) *Resource[models.SocialTrend] {
	return NewResource("Social trend", st.SocialTrends, validation.SocialTrends, logger)
}

// NewResponsePlanHandler serves /api/response-plans
func NewResponsePlanHandler(st *store.Store, logger *zap.SugaredLogger) *Resource[models.ResponsePlan] {
	h := NewResource("Response plan", st.ResponsePlans, validation.ResponsePlans, logger)
	h.prepare = func(r *http.Request, p *models.ResponsePlan) { p.CreatedBy = currentUserID(r) }
	return h
}
