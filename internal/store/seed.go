package store

import (
	"fmt"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
)

// DefaultAdminUsername is the operator account created by Seed
const DefaultAdminUsername = "admin"

// Seed loads the demo dataset. encode turns the plaintext seed password into
// its stored form.
func Seed(s *Store, encode func(string) (string, error)) error {
	password, err := encode("admin123")
	if err != nil {
		return fmt.Errorf("encode seed password: %w", err)
	}
	agency := "National Emergency Management Agency"
	admin := s.Users.Create(models.User{
		Username: DefaultAdminUsername,
		Password: password,
		FullName: "System Administrator",
		Email:    "admin@ewers.local",
		Role:     models.RoleAdmin,
		Agency:   &agency,
	})

	population := 1200
	flood := s.Incidents.Create(models.Incident{
		Title:              "Flash flooding along river bank",
		Description:        "Heavy overnight rainfall has flooded low-lying settlements.",
		Location:           "Lokoja, Kogi",
		Coordinates:        models.Coordinates{Lat: 7.8023, Lng: 6.7333},
		IncidentType:       "flood",
		Severity:           models.SeverityHigh,
		ReportedBy:         admin.ID,
		AffectedPopulation: &population,
		Tags:               []string{"flood", "displacement"},
	})
	s.Incidents.Create(models.Incident{
		Title:        "Armed attack on market",
		Description:  "Gunmen reported near the weekly market; casualties unconfirmed.",
		Location:     "Zurmi, Zamfara",
		Coordinates:  models.Coordinates{Lat: 12.7769, Lng: 6.7833},
		IncidentType: "banditry",
		Severity:     models.SeverityCritical,
		Status:       models.IncidentInvestigating,
		ReportedBy:   admin.ID,
		Tags:         []string{"security"},
	})
	s.Incidents.Create(models.Incident{
		Title:        "Farmer-herder dispute",
		Description:  "Dispute over grazing land settled by community leaders.",
		Location:     "Bokkos, Plateau",
		Coordinates:  models.Coordinates{Lat: 9.3000, Lng: 8.9833},
		IncidentType: "communal_clash",
		Severity:     models.SeverityMedium,
		Status:       models.IncidentResolved,
		ReportedBy:   admin.ID,
	})

	s.Alerts.Create(models.Alert{
		Title:             "Flood warning",
		Description:       "River levels expected to rise further in the next 24 hours.",
		AlertType:         "weather",
		Severity:          models.SeverityHigh,
		Source:            "Hydrological Services Agency",
		RelatedIncidentID: &flood.ID,
	})

	state := "Kogi"
	s.SocialTrends.Create(models.SocialTrend{
		Platform:             "twitter",
		Keyword:              "#LokojaFlood",
		Volume:               842,
		Sentiment:            -0.6,
		Location:             &state,
		Source:               "social-monitor",
		RelatedIncidentTypes: []string{"flood"},
	})

	s.CallLogs.Create(models.CallLog{
		CallerName:       "Anonymous",
		ContactNumber:    "0800-000-0000",
		Location:         "Lokoja, Kogi",
		IncidentType:     "flood",
		Severity:         models.SeverityHigh,
		Description:      "Caller reports families stranded on rooftops.",
		ImmediateActions: []string{"Notified SEMA rescue team"},
		LoggedBy:         admin.ID,
	})

	s.ResponsePlans.Create(models.ResponsePlan{
		Title:        "Flood evacuation",
		Description:  "Standard evacuation procedure for riverine flooding.",
		IncidentType: "flood",
		Severity:     models.SeverityHigh,
		Steps: []models.PlanStep{
			{Order: 1, Title: "Issue warning", Description: "Broadcast evacuation notice to affected wards."},
			{Order: 2, Title: "Open shelters", Description: "Activate designated camps and register arrivals."},
			{Order: 3, Title: "Search and rescue", Description: "Deploy boats to stranded households."},
		},
		ContactAgencies: []models.ContactAgency{
			{Name: "NEMA", Contact: "112", Role: "coordination"},
			{Name: "Red Cross", Contact: "0809-000-0001", Role: "first aid and shelter"},
		},
		Resources: []models.PlanResource{
			{Type: "boat", Quantity: 6, Description: "Inflatable rescue boats"},
			{Type: "tent", Quantity: 200, Description: "Family tents"},
		},
		CreatedBy: admin.ID,
	})

	return nil
}
