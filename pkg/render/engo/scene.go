// pkg/render/engo/scene.go
package engo

import (
	"image/color"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-volley/pkg/engine"
	"github.com/opd-ai/go-volley/pkg/input"
	"github.com/opd-ai/go-volley/pkg/logging"
)

// MaxStepsPerFrame caps how many ticks one slow frame may catch up.
const MaxStepsPerFrame = 5

// Stepper is the part of the engine loop the match system drives.
type Stepper interface {
	Step()
	Interval() time.Duration
}

// MatchSystem steps the match from engo frames. Frame time is accumulated
// and one tick runs each time it reaches the loop's current interval, so
// slow motion still stretches wall-clock time between ticks.
type MatchSystem struct {
	loop    Stepper
	pending time.Duration
	ticks   uint64
}

// NewMatchSystem creates a match system stepping loop.
func NewMatchSystem(loop Stepper) *MatchSystem {
	return &MatchSystem{loop: loop}
}

// Remove satisfies ecs.System.
func (ms *MatchSystem) Remove(ecs.BasicEntity) {}

// Update satisfies ecs.System.
func (ms *MatchSystem) Update(dt float32) {
	ms.pending += time.Duration(float64(dt) * float64(time.Second))
	for steps := 0; steps < MaxStepsPerFrame; steps++ {
		interval := ms.loop.Interval()
		if ms.pending < interval {
			return
		}
		ms.pending -= interval
		ms.loop.Step()
		ms.ticks++
	}
	// Too far behind; drop the backlog instead of spiralling.
	ms.pending = 0
}

// Ticks returns the number of ticks stepped so far.
func (ms *MatchSystem) Ticks() uint64 {
	return ms.ticks
}

// GameScene is the engo scene a local match is played in.
type GameScene struct {
	sim      *engine.Simulation
	renderer *EngoRenderer
	device   *input.StateDevice
	keys     []input.KeyID
	logger   *logging.Logger

	world *ecs.World
	match *MatchSystem
}

// NewGameScene creates a scene for sim. The simulation must have been built
// with renderer as its renderer and device as its input device.
func NewGameScene(sim *engine.Simulation, renderer *EngoRenderer, device *input.StateDevice, keys []input.KeyID, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		sim:      sim,
		renderer: renderer,
		device:   device,
		keys:     keys,
		logger:   logger,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "VolleyScene"
}

// Preload loads the HUD font and registers key bindings (required by Engo)
func (scene *GameScene) Preload() {
	ctx := scene.sim.Match.Context()
	if err := scene.renderer.HUD().LoadFont(); err != nil {
		scene.logger.Error(ctx, "hud font unavailable", err)
	}
	if err := RegisterBindings(scene.keys...); err != nil {
		scene.logger.Error(ctx, "registering key bindings", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Warn(scene.sim.Match.Context(), "engo updater is not an ecs world")
		return
	}
	scene.world = world
	common.SetBackground(color.RGBA{20, 24, 40, 255})

	world.AddSystem(&common.RenderSystem{})
	scene.renderer.Attach(world)

	arena := scene.sim.Config.Arena()
	scale := arena.Width / float64(engo.WindowWidth())
	world.AddSystem(NewInputSystem(scene.device, scene.keys, scale))

	scene.match = NewMatchSystem(scene.sim.Loop)
	world.AddSystem(scene.match)

	scene.sim.Match.Start()
}

// Exit is called when the window closes (required by Engo)
func (scene *GameScene) Exit() {
	if scene.sim.Match.IsRunning() {
		scene.sim.Match.Stop()
	}
}

// Run opens a window and plays the match until it is closed.
func Run(scene *GameScene, title string) {
	arena := scene.sim.Config.Arena()
	engo.Run(engo.RunOptions{
		Title:         title,
		Width:         int(arena.Width),
		Height:        int(arena.Height),
		ScaleOnResize: true,
		FPSLimit:      120,
	}, scene)
}
