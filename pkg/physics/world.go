package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Collision categories. Every body collides with every category; the
// categories only tag bodies.
const (
	CategoryPlayer uint = 1 << iota
	CategoryBall
	CategoryWorld
)

const (
	// minShapeFactor keeps a zero body-body coefficient from zeroing the
	// body-world product too.
	minShapeFactor = 1e-3

	// wallRadius is the thickness of the boundary segments. The segments are
	// pushed outwards by this amount so the playable surface sits exactly on
	// the world edge.
	wallRadius = 10.0
)

// Material describes how a contact between two material classes behaves.
type Material struct {
	Friction    float64
	Restitution float64
}

// WorldSettings configures the simulated arena.
type WorldSettings struct {
	Width   float64
	Height  float64
	Gravity float64

	NetWidth  float64
	NetHeight float64

	// BodyWorld applies between a moving body and the bounds or the net.
	BodyWorld Material
	// BodyBody applies between two moving bodies.
	BodyBody Material
}

// shapeMaterials are the per-shape coefficients that reproduce the two
// contact materials. Chipmunk multiplies the coefficients of the two shapes
// in contact, so body*body gives BodyBody and body*world gives BodyWorld.
type shapeMaterials struct {
	body  Material
	world Material
}

func splitMaterials(bodyWorld, bodyBody Material) shapeMaterials {
	fb := math.Max(math.Sqrt(math.Max(bodyBody.Friction, 0)), minShapeFactor)
	eb := math.Max(math.Sqrt(math.Max(bodyBody.Restitution, 0)), minShapeFactor)
	return shapeMaterials{
		body:  Material{Friction: fb, Restitution: eb},
		world: Material{Friction: bodyWorld.Friction / fb, Restitution: bodyWorld.Restitution / eb},
	}
}

// World is the rigid-body simulation the game core runs on. It owns every
// body it creates; the core only borrows them through the Body interface.
type World struct {
	space     *cp.Space
	settings  WorldSettings
	materials shapeMaterials
	net       Rect
	bodies    []*CircleBody
}

// NewWorld creates a Chipmunk2D space with gravity, four boundary walls and a
// static net standing on the floor at the center.
func NewWorld(s WorldSettings) (*World, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid world size %gx%g", s.Width, s.Height)
	}

	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: s.Gravity})

	w := &World{
		space:     space,
		settings:  s,
		materials: splitMaterials(s.BodyWorld, s.BodyBody),
		net: Rect{
			Center: Vector2D{X: s.Width / 2, Y: s.Height - s.NetHeight/2},
			Width:  s.NetWidth,
			Height: s.NetHeight,
		},
	}

	w.addWalls()
	w.addNet()

	return w, nil
}

func (w *World) addWalls() {
	width, height := w.settings.Width, w.settings.Height
	r := wallRadius
	walls := [][2]cp.Vector{
		{{X: -r, Y: height + r}, {X: width + r, Y: height + r}}, // floor
		{{X: -r, Y: -r}, {X: width + r, Y: -r}},                 // ceiling
		{{X: -r, Y: -r}, {X: -r, Y: height + r}},                // left
		{{X: width + r, Y: -r}, {X: width + r, Y: height + r}},  // right
	}

	static := w.space.StaticBody
	for _, seg := range walls {
		shape := cp.NewSegment(static, seg[0], seg[1], r)
		w.configureWorldShape(shape)
		w.space.AddShape(shape)
	}
}

func (w *World) addNet() {
	if w.settings.NetWidth <= 0 || w.settings.NetHeight <= 0 {
		return
	}
	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: w.net.Center.X, Y: w.net.Center.Y})
	w.space.AddBody(body)

	shape := cp.NewBox(body, w.net.Width, w.net.Height, 0)
	w.configureWorldShape(shape)
	w.space.AddShape(shape)
}

func (w *World) configureWorldShape(shape *cp.Shape) {
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryWorld, cp.ALL_CATEGORIES))
	shape.SetFriction(w.materials.world.Friction)
	shape.SetElasticity(w.materials.world.Restitution)
}

// AddCircle creates a dynamic circular body at pos. category is one of the
// Category constants.
func (w *World) AddCircle(pos Vector2D, radius, mass float64, category uint) *CircleBody {
	moment := cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	body := w.space.AddBody(cp.NewBody(mass, moment))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, category, cp.ALL_CATEGORIES))
	shape.SetFriction(w.materials.body.Friction)
	shape.SetElasticity(w.materials.body.Restitution)
	w.space.AddShape(shape)

	cb := &CircleBody{body: body, radius: radius, category: category}
	w.bodies = append(w.bodies, cb)
	return cb
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

// Net returns the rectangle occupied by the net.
func (w *World) Net() Rect {
	return w.net
}

// Bounds returns the playable area.
func (w *World) Bounds() Rect {
	return RectFromOrigin(w.settings.Width, w.settings.Height)
}

// Bodies returns every dynamic body created by the world.
func (w *World) Bodies() []*CircleBody {
	return w.bodies
}

// CircleBody adapts a Chipmunk body with a single circle shape to Body.
type CircleBody struct {
	body     *cp.Body
	radius   float64
	category uint
}

// Position implements Body.
func (c *CircleBody) Position() Vector2D {
	p := c.body.Position()
	return Vector2D{X: p.X, Y: p.Y}
}

// Velocity implements Body.
func (c *CircleBody) Velocity() Vector2D {
	v := c.body.Velocity()
	return Vector2D{X: v.X, Y: v.Y}
}

// SetVelocity implements Body.
func (c *CircleBody) SetVelocity(v Vector2D) {
	c.body.SetVelocity(v.X, v.Y)
}

// SetPosition implements Body.
func (c *CircleBody) SetPosition(p Vector2D) {
	c.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
}

// ResetRotation implements Body.
func (c *CircleBody) ResetRotation() {
	c.body.SetAngle(0)
	c.body.SetAngularVelocity(0)
}

// Bounds implements Body.
func (c *CircleBody) Bounds() Bounds {
	p := c.body.Position()
	return Bounds{Top: p.Y - c.radius, Bottom: p.Y + c.radius}
}

// Radius returns the collision radius.
func (c *CircleBody) Radius() float64 {
	return c.radius
}

// Category returns the collision category the body was created with.
func (c *CircleBody) Category() uint {
	return c.category
}
