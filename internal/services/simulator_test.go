package services

import (
	"sync"
	"testing"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []string
	payloads []any
}

func (p *recordingPublisher) Publish(msgType string, data any) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msgType)
	p.payloads = append(p.payloads, data)
	return 1
}

func TestSimulatorTick(t *testing.T) {
	st := store.New()
	pub := &recordingPublisher{}
	sim := NewSimulator(st, pub, 1, zap.NewNop().Sugar())

	for i := 0; i < 3; i++ {
		sim.Tick()
	}
	assert.Equal(t, 3, st.SocialTrends.Len())
	assert.Equal(t, 0, st.Alerts.Len())
	assert.Empty(t, pub.messages)

	sim.Tick()
	assert.Equal(t, 4, st.SocialTrends.Len())
	require.Equal(t, 1, st.Alerts.Len())
	require.Equal(t, []string{models.MessageNewAlert}, pub.messages)

	alert, ok := pub.payloads[0].(models.Alert)
	require.True(t, ok)
	assert.Equal(t, models.AlertActive, alert.Status)
	assert.NotEmpty(t, alert.Title)

	st.SocialTrends.Each(func(tr models.SocialTrend) bool {
		assert.Equal(t, "simulator", tr.Source)
		assert.GreaterOrEqual(t, tr.Sentiment, -1.0)
		assert.LessOrEqual(t, tr.Sentiment, 1.0)
		assert.Len(t, tr.RelatedIncidentTypes, 1)
		return true
	})
}

func TestSimulatorSchedule(t *testing.T) {
	sim := NewSimulator(store.New(), &recordingPublisher{}, 1, zap.NewNop().Sugar())
	assert.Error(t, sim.Start("every tuesday-ish"))

	require.NoError(t, sim.Start("@every 1h"))
	sim.Stop()
}
