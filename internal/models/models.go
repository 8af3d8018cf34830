// Package models defines the data structures used across the application.
// Entities are held in the in-memory store and serialized as-is to the dashboard.
package models

import "time"

// Role is a user's function within the response network
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleAnalyst   Role = "analyst"
	RoleResponder Role = "responder"
	RoleCallAgent Role = "call_agent"
)

// Severity grades incidents, call logs, alerts and response plans
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// IncidentStatus tracks an incident through verification and resolution
type IncidentStatus string

const (
	IncidentActive        IncidentStatus = "active"
	IncidentInvestigating IncidentStatus = "investigating"
	IncidentResolved      IncidentStatus = "resolved"
	IncidentClosed        IncidentStatus = "closed"
)

const (
	CallLogPending = "pending"
	AlertActive    = "active"
)

// User is an operator account. Password is held exactly as stored; never
// serialize a User directly to clients, use Public or Session.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Agency    *string   `json:"agency"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is a User with the credential removed
type PublicUser struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Agency    *string   `json:"agency"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionUser is the identity returned by login and auth status
type SessionUser struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Role     Role    `json:"role"`
	Agency   *string `json:"agency"`
}

// Public strips the credential.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Agency:    u.Agency,
		CreatedAt: u.CreatedAt,
	}
}

// Session returns the identity serialized into login responses.
func (u User) Session() SessionUser {
	return SessionUser{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		Agency:   u.Agency,
	}
}

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Incident is a reported crisis event
type Incident struct {
	ID                 int            `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Location           string         `json:"location"`
	Coordinates        Coordinates    `json:"coordinates"`
	IncidentType       string         `json:"incidentType"`
	Severity           Severity       `json:"severity"`
	Status             IncidentStatus `json:"status"`
	ReportedBy         int            `json:"reportedBy"`
	ReportedAt         time.Time      `json:"reportedAt"`
	VerifiedBy         *int           `json:"verifiedBy"`
	VerifiedAt         *time.Time     `json:"verifiedAt"`
	AffectedPopulation *int           `json:"affectedPopulation"`
	MediaLinks         []string       `json:"mediaLinks"`
	Tags               []string       `json:"tags"`
}

// CallLog is a call-center intake record
type CallLog struct {
	ID                int       `json:"id"`
	CallerName        string    `json:"callerName"`
	ContactNumber     string    `json:"contactNumber"`
	Location          string    `json:"location"`
	IncidentType      string    `json:"incidentType"`
	Severity          Severity  `json:"severity"`
	Description       string    `json:"description"`
	ImmediateActions  []string  `json:"immediateActions"`
	LoggedBy          int       `json:"loggedBy"`
	LoggedAt          time.Time `json:"loggedAt"`
	Status            string    `json:"status"`
	RelatedIncidentID *int      `json:"relatedIncidentId"`
}

// Alert is an early-warning notice sent to responders
type Alert struct {
	ID                int        `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	AlertType         string     `json:"alertType"`
	Severity          Severity   `json:"severity"`
	Source            string     `json:"source"`
	CreatedAt         time.Time  `json:"createdAt"`
	ExpiresAt         *time.Time `json:"expiresAt"`
	Status            string     `json:"status"`
	RelatedIncidentID *int       `json:"relatedIncidentId"`
	SentTo            []int      `json:"sentTo"`
}

// SocialTrend is a keyword volume observation from a social platform.
// Sentiment is advisory, nominally -1..1.
type SocialTrend struct {
	ID                   int       `json:"id"`
	Platform             string    `json:"platform"`
	Keyword              string    `json:"keyword"`
	Volume               int       `json:"volume"`
	Sentiment            float64   `json:"sentiment"`
	Location             *string   `json:"location"`
	Source               string    `json:"source"`
	CreatedAt            time.Time `json:"createdAt"`
	RelatedIncidentTypes []string  `json:"relatedIncidentTypes"`
}

// PlanStep is one ordered action in a response plan
type PlanStep struct {
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContactAgency is an agency to engage during a response
type ContactAgency struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Role    string `json:"role"`
}

// PlanResource is equipment or personnel a plan calls for
type PlanResource struct {
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// ResponsePlan is a playbook for an incident type and severity
type ResponsePlan struct {
	ID              int             `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	IncidentType    string          `json:"incidentType"`
	Severity        Severity        `json:"severity"`
	Steps           []PlanStep      `json:"steps"`
	ContactAgencies []ContactAgency `json:"contactAgencies"`
	Resources       []PlanResource  `json:"resources"`
	CreatedBy       int             `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
