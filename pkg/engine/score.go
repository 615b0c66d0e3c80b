package engine

import (
	"sync"

	"github.com/opd-ai/go-volley/pkg/entity"
	"github.com/opd-ai/go-volley/pkg/event"
)

// ScoreTracker keeps per-player totals and tells displays and the event bus
// about every point.
type ScoreTracker struct {
	mu       sync.Mutex
	scores   map[entity.ID]int
	displays []entity.ScoreDisplay
	bus      *event.Bus
}

// NewScoreTracker creates a tracker publishing to bus, which may be nil.
func NewScoreTracker(bus *event.Bus, displays ...entity.ScoreDisplay) *ScoreTracker {
	return &ScoreTracker{
		scores:   make(map[entity.ID]int),
		displays: displays,
		bus:      bus,
	}
}

// Award gives playerID a point and returns the new total.
func (t *ScoreTracker) Award(playerID entity.ID, ballX float64) int {
	t.mu.Lock()
	t.scores[playerID]++
	total := t.scores[playerID]
	displays := t.displays
	t.mu.Unlock()

	for _, d := range displays {
		d.OnScore(playerID, total)
	}
	if t.bus != nil {
		t.bus.Publish(event.NewScoreEvent(t, uint64(playerID), total, ballX))
	}
	return total
}

// Score returns the total of playerID.
func (t *ScoreTracker) Score(playerID entity.ID) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scores[playerID]
}

// Reset zeroes every total.
func (t *ScoreTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id := range t.scores {
		delete(t.scores, id)
	}
}
