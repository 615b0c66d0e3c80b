// pkg/engine/match.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/opd-ai/go-volley/pkg/control"
	"github.com/opd-ai/go-volley/pkg/entity"
	"github.com/opd-ai/go-volley/pkg/event"
	"github.com/opd-ai/go-volley/pkg/logging"
	"github.com/opd-ai/go-volley/pkg/physics"
)

const (
	// LandingEpsilon is how far above the floor the ball's lowest point
	// counts as landed.
	LandingEpsilon = 1.0
	// GroundEpsilon is how far above the floor a player counts as grounded.
	GroundEpsilon = 2.0
	// ServeVelocityY is the vertical velocity the ball is served with.
	ServeVelocityY = -350.0
)

// ErrMissingBody is returned by NewMatch when a player or the ball has no
// physics body.
var ErrMissingBody = errors.New("match entity has no physics body")

// MatchStatus is the rally state of a match.
type MatchStatus int

const (
	MatchStatusServing MatchStatus = iota
	MatchStatusRallying
	MatchStatusPointScored
)

func (s MatchStatus) String() string {
	switch s {
	case MatchStatusServing:
		return "serving"
	case MatchStatusRallying:
		return "rallying"
	case MatchStatusPointScored:
		return "point_scored"
	default:
		return fmt.Sprintf("MatchStatus(%d)", int(s))
	}
}

// Score is the running score of both players.
type Score struct {
	P1 int
	P2 int
}

// MatchState is everything a match simulates: two players, one ball, a net
// and the arena.
type MatchState struct {
	Player1 *entity.Player
	Player2 *entity.Player
	Ball    *entity.Ball
	Net     *entity.Net
	World   physics.Rect
}

// CenterX is the x coordinate dividing the two halves.
func (s *MatchState) CenterX() float64 {
	return s.World.Center.X
}

// ServePositions returns where the left and right players start each rally
// in an arena.
func ServePositions(world physics.Rect) (left, right physics.Vector2D) {
	c := world.Center
	return physics.Vector2D{X: c.X / 4, Y: c.Y}, physics.Vector2D{X: c.X * 1.75, Y: c.Y}
}

// Match is the match controller. It runs one rally tick per Update and
// awards points when the ball lands.
type Match struct {
	State       MatchState
	Status      MatchStatus
	CurrentTick uint64
	Running     bool
	ID          string

	// EventBus handlers run while the match is locked and must not call
	// back into the Match.
	EventBus *event.Bus
	Renderer entity.Renderer
	Scores   *ScoreTracker

	// StateLock guards State, Status and CurrentTick against readers on
	// other goroutines.
	StateLock sync.RWMutex

	logger *logging.Logger
	ctx    context.Context
}

// MatchOption configures a Match.
type MatchOption func(*Match)

// WithRenderer sets the renderer entities are drawn to every tick.
func WithRenderer(r entity.Renderer) MatchOption {
	return func(m *Match) { m.Renderer = r }
}

// WithEventBus sets the bus match events are published on.
func WithEventBus(bus *event.Bus) MatchOption {
	return func(m *Match) { m.EventBus = bus }
}

// WithScoreDisplays adds displays notified of every point.
func WithScoreDisplays(displays ...entity.ScoreDisplay) MatchOption {
	return func(m *Match) { m.Scores.displays = append(m.Scores.displays, displays...) }
}

// WithLogger sets the match logger.
func WithLogger(l *logging.Logger) MatchOption {
	return func(m *Match) { m.logger = l }
}

// WithMatchID sets the match ID used to correlate logs and events.
func WithMatchID(id string) MatchOption {
	return func(m *Match) { m.ID = id }
}

// NewMatch creates a match in the serving state. Players and ball are put on
// their serve spots. Control settings that cannot drive a charge are
// rejected with control.ErrInvalidSettings.
func NewMatch(state MatchState, opts ...MatchOption) (*Match, error) {
	if err := checkBodies(state); err != nil {
		return nil, err
	}

	m := &Match{
		State:    state,
		Status:   MatchStatusServing,
		EventBus: event.NewEventBus(),
		Renderer: nullRenderer{},
	}
	m.Scores = NewScoreTracker(m.EventBus)
	for _, opt := range opts {
		opt(m)
	}
	m.Scores.bus = m.EventBus
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.ID == "" {
		m.ID = logging.GenerateMatchID()
	}
	m.ctx = logging.WithMatchID(context.Background(), m.ID)

	if err := m.resetPositions(); err != nil {
		return nil, err
	}
	return m, nil
}

func checkBodies(s MatchState) error {
	switch {
	case s.Player1 == nil || s.Player1.Body == nil:
		return fmt.Errorf("player 1: %w", ErrMissingBody)
	case s.Player2 == nil || s.Player2.Body == nil:
		return fmt.Errorf("player 2: %w", ErrMissingBody)
	case s.Ball == nil || s.Ball.Body == nil:
		return fmt.Errorf("ball: %w", ErrMissingBody)
	case s.World.Width <= 0 || s.World.Height <= 0:
		return fmt.Errorf("arena %vx%v is empty", s.World.Width, s.World.Height)
	}
	if err := s.Player1.Settings.Validate(); err != nil {
		return fmt.Errorf("player 1: %w", err)
	}
	if err := s.Player2.Settings.Validate(); err != nil {
		return fmt.Errorf("player 2: %w", err)
	}
	return nil
}

// Start marks the match running.
func (m *Match) Start() {
	m.StateLock.Lock()
	m.Running = true
	tick := m.CurrentTick
	m.StateLock.Unlock()

	m.logger.Info(m.ctx, "match started")
	m.EventBus.Publish(event.NewMatchEvent(event.MatchStarted, m, m.ID, tick))
}

// Stop marks the match stopped.
func (m *Match) Stop() {
	m.StateLock.Lock()
	m.Running = false
	tick := m.CurrentTick
	score := m.scoreLocked()
	m.StateLock.Unlock()

	m.logger.Info(m.ctx, "match stopped", "tick", tick, "p1", score.P1, "p2", score.P2)
	m.EventBus.Publish(event.NewMatchEvent(event.MatchStopped, m, m.ID, tick))
}

// Update advances the match by one tick. Body state is read once at the
// start of the tick; the physics world is stepped by the caller afterwards.
func (m *Match) Update() {
	m.StateLock.Lock()
	defer m.StateLock.Unlock()

	if m.Status == MatchStatusServing {
		m.Status = MatchStatusRallying
	}

	s := &m.State
	p1 := capture(s.Player1.Body)
	p2 := capture(s.Player2.Body)
	ball := capture(s.Ball.Body)

	m.Renderer.Clear()
	if s.Net != nil {
		s.Net.Render(m.Renderer)
	}
	if s.Ball.Body == nil {
		m.logger.Error(m.ctx, "ball has no physics body", ErrMissingBody, "tick", m.CurrentTick)
	} else {
		m.updatePlayer(s.Player1, p1, p2, ball)
		m.updatePlayer(s.Player2, p2, p1, ball)
		s.Ball.Render(m.Renderer)
		m.checkLanding(ball)
	}

	m.Renderer.Present()
	m.CurrentTick++
}

// capture snapshots b, or returns the zero snapshot for a missing body.
func capture(b physics.Body) physics.Snapshot {
	if b == nil {
		return physics.Snapshot{}
	}
	return physics.Capture(b)
}

// updatePlayer runs one player's input and charge. Bodies only move when the
// world steps, so the live body still matches the tick-start snapshot here.
func (m *Match) updatePlayer(p *entity.Player, self, opponent, ball physics.Snapshot) {
	if p.Body == nil {
		m.logger.Error(m.ctx, "player has no physics body", ErrMissingBody, "player", p.Name, "tick", m.CurrentTick)
		return
	}
	grounded := p.Grounded(m.State.World.Height, GroundEpsilon)
	defer p.Render(m.Renderer)

	if p.Source == nil {
		m.logger.Error(m.ctx, "player has no input source", control.ErrNoDevice, "player", p.Name)
		return
	}
	sig, err := p.Source.Next(control.Frame{
		Tick:     m.CurrentTick,
		Self:     self,
		Opponent: opponent,
		Ball:     ball,
		Charge:   p.Charge,
		Grounded: grounded,
	})
	if err != nil {
		m.logger.Error(m.ctx, "reading player input", err, "player", p.Name, "tick", m.CurrentTick)
		return
	}

	control.ApplyMovement(p.Body, sig.Move, grounded, p.Settings)

	before := p.Charge.Value
	res, err := p.Charge.Update(sig, p.Body, p.Settings)
	if err != nil {
		m.logger.Error(m.ctx, "updating charge", err, "player", p.Name, "tick", m.CurrentTick)
		return
	}
	if res.Healed {
		m.logger.Warn(m.ctx, "charge out of range, clamped", "player", p.Name, "value", before)
		m.EventBus.Publish(event.NewPlayerEvent(event.ChargeHealed, p, uint64(p.ID), before, p.Charge.Angle))
	}
	if res.Released {
		power := res.Impulse.Length() / control.LaunchMultiplier
		m.logger.Debug(m.ctx, "shot released", "player", p.Name, "power", power, "angle", p.Charge.Angle)
		m.EventBus.Publish(event.NewPlayerEvent(event.ShotReleased, p, uint64(p.ID), power, p.Charge.Angle))
	}
	p.Line = res.Line
}

func (m *Match) checkLanding(ball physics.Snapshot) {
	if !m.State.Ball.Landed(m.State.World.Height, LandingEpsilon) {
		return
	}

	var scorer *entity.Player
	switch x := ball.Position.X; {
	case x < m.State.CenterX():
		scorer = m.State.Player2
	case x > m.State.CenterX():
		scorer = m.State.Player1
	default:
		return
	}

	m.Status = MatchStatusPointScored
	total := m.Scores.Award(scorer.ID, ball.Position.X)
	m.logger.Info(m.ctx, "point scored", "player", scorer.Name, "total", total, "ball_x", ball.Position.X, "tick", m.CurrentTick)

	if err := m.resetPositions(); err != nil {
		m.logger.Error(m.ctx, "resetting positions", err)
	}
}

// Reset puts everything back on the serve spots without awarding a point.
func (m *Match) Reset() error {
	m.StateLock.Lock()
	defer m.StateLock.Unlock()
	return m.resetPositions()
}

func (m *Match) resetPositions() error {
	s := &m.State
	errs := []error{
		s.Player1.ResetToServe(),
		s.Player2.ResetToServe(),
		s.Ball.ResetTo(s.World.Center, physics.Vector2D{X: 0, Y: ServeVelocityY}),
	}
	m.Status = MatchStatusServing
	m.EventBus.Publish(event.NewMatchEvent(event.ServeStarted, m, m.ID, m.CurrentTick))
	return errors.Join(errs...)
}

// Charging reports whether any player is charging a shot.
func (m *Match) Charging() bool {
	m.StateLock.RLock()
	defer m.StateLock.RUnlock()
	return m.State.Player1.Charge.Charging() || m.State.Player2.Charge.Charging()
}

// Score returns the current score.
func (m *Match) Score() Score {
	m.StateLock.RLock()
	defer m.StateLock.RUnlock()
	return m.scoreLocked()
}

func (m *Match) scoreLocked() Score {
	return Score{
		P1: m.Scores.Score(m.State.Player1.ID),
		P2: m.Scores.Score(m.State.Player2.ID),
	}
}

// IsRunning reports whether the match was started and not stopped.
func (m *Match) IsRunning() bool {
	m.StateLock.RLock()
	defer m.StateLock.RUnlock()
	return m.Running
}

// Tick returns the number of completed ticks.
func (m *Match) Tick() uint64 {
	m.StateLock.RLock()
	defer m.StateLock.RUnlock()
	return m.CurrentTick
}

// CurrentStatus returns the rally state.
func (m *Match) CurrentStatus() MatchStatus {
	m.StateLock.RLock()
	defer m.StateLock.RUnlock()
	return m.Status
}

// Context returns a context carrying the match ID.
func (m *Match) Context() context.Context {
	return m.ctx
}

type nullRenderer struct{}

func (nullRenderer) Clear()                                               {}
func (nullRenderer) DrawNet(*entity.Net)                                  {}
func (nullRenderer) DrawPlayer(*entity.Player)                            {}
func (nullRenderer) DrawBall(*entity.Ball)                                {}
func (nullRenderer) DrawAimLine(entity.ID, control.AimLine, entity.Color) {}
func (nullRenderer) DrawDebugLine(physics.Vector2D, physics.Vector2D)     {}
func (nullRenderer) DebugText(string, string)                             {}
func (nullRenderer) Present()                                             {}
