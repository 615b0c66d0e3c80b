// pkg/physics/collision.go
package physics

// Rect represents an axis-aligned rectangle given by its center.
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether point lies inside the rectangle. The right and
// bottom edges are exclusive.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Left() &&
		point.X < r.Right() &&
		point.Y >= r.Top() &&
		point.Y < r.Bottom()
}

// Left returns the smallest X of the rectangle.
func (r Rect) Left() float64 { return r.Center.X - r.Width/2 }

// Right returns the largest X of the rectangle.
func (r Rect) Right() float64 { return r.Center.X + r.Width/2 }

// Top returns the smallest Y of the rectangle.
func (r Rect) Top() float64 { return r.Center.Y - r.Height/2 }

// Bottom returns the largest Y of the rectangle.
func (r Rect) Bottom() float64 { return r.Center.Y + r.Height/2 }

// RectFromOrigin builds the world rectangle that starts at (0,0).
func RectFromOrigin(width, height float64) Rect {
	return Rect{
		Center: Vector2D{X: width / 2, Y: height / 2},
		Width:  width,
		Height: height,
	}
}
