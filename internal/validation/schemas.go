package validation

import (
	"encoding/json"
	"time"
)

type coordinatesFields struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

type userFields struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=64"`
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
	FullName *string `json:"fullName" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin user analyst responder call_agent"`
	Agency   *string `json:"agency" null:"true"`
}

type incidentFields struct {
	Title              *string            `json:"title" validate:"omitempty,min=1"`
	Description        *string            `json:"description" validate:"omitempty,min=1"`
	Location           *string            `json:"location" validate:"omitempty,min=1"`
	Coordinates        *coordinatesFields `json:"coordinates"`
	IncidentType       *string            `json:"incidentType" validate:"omitempty,min=1"`
	Severity           *string            `json:"severity" validate:"omitempty,oneof=critical high medium low"`
	Status             *string            `json:"status" validate:"omitempty,oneof=active investigating resolved closed"`
	VerifiedBy         *int               `json:"verifiedBy" null:"true"`
	VerifiedAt         *time.Time         `json:"verifiedAt" null:"true"`
	AffectedPopulation *int               `json:"affectedPopulation" validate:"omitempty,gte=0" null:"true"`
	MediaLinks         []string           `json:"mediaLinks"`
	Tags               []string           `json:"tags"`
}

type callLogFields struct {
	CallerName        *string  `json:"callerName" validate:"omitempty,min=1"`
	ContactNumber     *string  `json:"contactNumber" validate:"omitempty,min=1"`
	Location          *string  `json:"location" validate:"omitempty,min=1"`
	IncidentType      *string  `json:"incidentType" validate:"omitempty,min=1"`
	Severity          *string  `json:"severity" validate:"omitempty,oneof=critical high medium low"`
	Description       *string  `json:"description" validate:"omitempty,min=1"`
	ImmediateActions  []string `json:"immediateActions"`
	Status            *string  `json:"status" validate:"omitempty,min=1"`
	RelatedIncidentID *int     `json:"relatedIncidentId" null:"true"`
}

type alertFields struct {
	Title             *string    `json:"title" validate:"omitempty,min=1"`
	Description       *string    `json:"description" validate:"omitempty,min=1"`
	AlertType         *string    `json:"alertType" validate:"omitempty,min=1"`
	Severity          *string    `json:"severity" validate:"omitempty,oneof=critical high medium low"`
	Source            *string    `json:"source" validate:"omitempty,min=1"`
	ExpiresAt         *time.Time `json:"expiresAt" null:"true"`
	Status            *string    `json:"status" validate:"omitempty,min=1"`
	RelatedIncidentID *int       `json:"relatedIncidentId" null:"true"`
	SentTo            []int      `json:"sentTo"`
}

type socialTrendFields struct {
	Platform             *string  `json:"platform" validate:"omitempty,min=1"`
	Keyword              *string  `json:"keyword" validate:"omitempty,min=1"`
	Volume               *int     `json:"volume" validate:"omitempty,gte=0"`
	Sentiment            *float64 `json:"sentiment"`
	Location             *string  `json:"location" null:"true"`
	Source               *string  `json:"source" validate:"omitempty,min=1"`
	RelatedIncidentTypes []string `json:"relatedIncidentTypes"`
}

type planStepFields struct {
	Order       *int    `json:"order" validate:"required,gte=0"`
	Title       *string `json:"title" validate:"required,min=1"`
	Description *string `json:"description" validate:"required"`
}

type contactAgencyFields struct {
	Name    *string `json:"name" validate:"required,min=1"`
	Contact *string `json:"contact" validate:"required"`
	Role    *string `json:"role" validate:"required"`
}

type planResourceFields struct {
	Type        *string `json:"type" validate:"required,min=1"`
	Quantity    *int    `json:"quantity" validate:"required,gte=0"`
	Description *string `json:"description" validate:"required"`
}

type responsePlanFields struct {
	Title           *string               `json:"title" validate:"omitempty,min=1"`
	Description     *string               `json:"description" validate:"omitempty,min=1"`
	IncidentType    *string               `json:"incidentType" validate:"omitempty,min=1"`
	Severity        *string               `json:"severity" validate:"omitempty,oneof=critical high medium low"`
	Steps           []planStepFields      `json:"steps" validate:"omitempty,dive"`
	ContactAgencies []contactAgencyFields `json:"contactAgencies" validate:"omitempty,dive"`
	Resources       []planResourceFields  `json:"resources" validate:"omitempty,dive"`
}

type loginFields struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=1"`
}

type chatMessageFields struct {
	Role    *string `json:"role" validate:"required,oneof=user assistant system"`
	Content *string `json:"content" validate:"required"`
}

type chatFields struct {
	Messages []chatMessageFields `json:"messages" validate:"omitempty,min=1,dive"`
}

type analyzeFields struct {
	Text *string `json:"text" validate:"omitempty,min=1"`
}

type recommendFields struct {
	Incident json.RawMessage `json:"incident"`
}

type trendsFields struct {
	TrendData json.RawMessage `json:"trendData"`
}

// Schemas for each entity kind. Server-assigned keys (id, timestamps,
// reportedBy, loggedBy, createdBy) are absent and therefore ignored.
var (
	Users = NewSchema("user", userFields{},
		"username", "password", "fullName", "email")
	Incidents = NewSchema("incident", incidentFields{},
		"title", "description", "location", "coordinates", "incidentType", "severity")
	CallLogs = NewSchema("call log", callLogFields{},
		"callerName", "contactNumber", "location", "incidentType", "severity", "description")
	Alerts = NewSchema("alert", alertFields{},
		"title", "description", "alertType", "severity", "source")
	SocialTrends = NewSchema("social trend", socialTrendFields{},
		"platform", "keyword", "volume", "sentiment", "source")
	ResponsePlans = NewSchema("response plan", responsePlanFields{},
		"title", "description", "incidentType", "severity", "steps")
)

// Request schemas for non-entity endpoints
var (
	Login     = NewSchema("login", loginFields{}, "username", "password")
	Chat      = NewSchema("chat", chatFields{}, "messages")
	Analyze   = NewSchema("analysis", analyzeFields{}, "text")
	Recommend = NewSchema("recommendation", recommendFields{}, "incident")
	Trends    = NewSchema("trend analysis", trendsFields{}, "trendData")
)
