package models

// Stats is the dashboard summary returned by GET /api/stats
type Stats struct {
	ActiveIncidents   int `json:"activeIncidents"`
	NewReportsToday   int `json:"newReportsToday"`
	SocialMediaAlerts int `json:"socialMediaAlerts"`
	ResolvedIncidents int `json:"resolvedIncidents"`
}

// HealthStatus represents the server health check response
type HealthStatus struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime,omitempty"`
	Sessions  string `json:"sessions,omitempty"`
	Listeners int    `json:"listeners"`
}

// Real-time message types pushed over the WebSocket channel
const (
	MessageConnected      = "CONNECTED"
	MessagePing           = "PING"
	MessagePong           = "PONG"
	MessageNewIncident    = "NEW_INCIDENT"
	MessageUpdateIncident = "UPDATE_INCIDENT"
	MessageNewAlert       = "NEW_ALERT"
	MessageUpdateAlert    = "UPDATE_ALERT"
)

// ChatMessage is one turn of an AI chat transcript
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TrendAnalysis is the structured result of the trend-analysis endpoint
type TrendAnalysis struct {
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	RiskLevel       Severity `json:"riskLevel"`
	Confidence      float64  `json:"confidence"`
}
