package services

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/store"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Publisher pushes a typed message to real-time subscribers and reports how
// many were reached.
type Publisher interface {
	Publish(msgType string, data any) int
}

// alertEvery is how many ticks pass between simulated alerts
const alertEvery = 4

var (
	simPlatforms = []string{"twitter", "facebook", "tiktok", "whatsapp"}
	simKeywords  = []struct {
		keyword      string
		incidentType string
	}{
		{"flood", "flood"},
		{"gunmen", "banditry"},
		{"kidnap", "kidnapping"},
		{"clash", "communal_clash"},
		{"fire outbreak", "fire"},
		{"cholera", "disease_outbreak"},
	}
	simLocations  = []string{"Maiduguri, Borno", "Jos, Plateau", "Gusau, Zamfara", "Makurdi, Benue", "Lokoja, Kogi"}
	simSeverities = []models.Severity{models.SeverityLow, models.SeverityMedium, models.SeverityHigh, models.SeverityCritical}
)

// Simulator feeds the demo dashboard with synthetic social trends and alerts
// on a cron schedule.
type Simulator struct {
	store  *store.Store
	pub    Publisher
	logger *zap.SugaredLogger

	mu    sync.Mutex
	rng   *rand.Rand
	ticks int
	cron  *cron.Cron
}

// NewSimulator creates a simulator. seed fixes the random sequence.
func NewSimulator(st *store.Store, pub Publisher, seed int64, logger *zap.SugaredLogger) *Simulator {
	return &Simulator{
		store:  st,
		pub:    pub,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Start schedules Tick with a cron expression such as "@every 30s"
func (s *Simulator) Start(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, s.Tick); err != nil {
		return fmt.Errorf("invalid simulator schedule %q: %w", schedule, err)
	}
	s.cron = c
	c.Start()
	s.logger.Infow("Demo feed simulator started", "schedule", schedule)
	return nil
}

// Stop halts the schedule and waits for a running tick to finish
func (s *Simulator) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("Demo feed simulator stopped")
}

// Tick adds one social trend, and every few ticks an alert that is pushed to
// subscribers.
func (s *Simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks++

	kw := simKeywords[s.rng.Intn(len(simKeywords))]
	location := simLocations[s.rng.Intn(len(simLocations))]
	trend := s.store.SocialTrends.Create(models.SocialTrend{
		Platform:             simPlatforms[s.rng.Intn(len(simPlatforms))],
		Keyword:              kw.keyword,
		Volume:               50 + s.rng.Intn(5000),
		Sentiment:            float64(s.rng.Intn(201)-100) / 100,
		Location:             &location,
		Source:               "simulator",
		RelatedIncidentTypes: []string{kw.incidentType},
	})
	s.logger.Debugw("Simulated social trend", "id", trend.ID, "keyword", trend.Keyword)

	if s.ticks%alertEvery != 0 {
		return
	}

	alert := s.store.Alerts.Create(models.Alert{
		Title:       fmt.Sprintf("Rising %q mentions near %s", kw.keyword, location),
		Description: fmt.Sprintf("Social media volume for %q reached %d posts.", kw.keyword, trend.Volume),
		AlertType:   kw.incidentType,
		Severity:    simSeverities[s.rng.Intn(len(simSeverities))],
		Source:      "social-monitor",
	})
	reached := s.pub.Publish(models.MessageNewAlert, alert)
	s.logger.Infow("Simulated alert", "id", alert.ID, "clients", reached)
}
