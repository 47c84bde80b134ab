package canopy

import "fmt"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Predefined colors.
var (
	ColorClear     = Color{}
	ColorWhite     = Color{1, 1, 1, 1}
	ColorBlack     = Color{0, 0, 0, 1}
	ColorGray      = Color{0.5, 0.5, 0.5, 1}
	ColorLightGray = Color{0.8, 0.8, 0.8, 1}
	ColorRed       = Color{1, 0, 0, 1}
	ColorGreen     = Color{0, 1, 0, 1}
	ColorBlue      = Color{0, 0, 1, 1}
	ColorOrange    = Color{1, 0.6, 0, 1}
	ColorTurquoise = Color{0.25, 0.88, 0.82, 1}
)

// IsVisible reports whether the color has any opacity.
func (c Color) IsVisible() bool {
	return c.A > 0
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Point is a 2D position. The coordinate system has its origin at the
// top-left, with Y increasing downward.
type Point struct {
	X, Y float64
}

// Add returns p translated by o.
func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

// Sub returns p minus o.
func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// NewRect builds a Rect from an origin and a size.
func NewRect(origin Point, size Size) Rect {
	return Rect{origin.X, origin.Y, size.Width, size.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{r.X, r.Y}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{r.Width, r.Height}
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// WithCenter returns r moved so that its midpoint is c.
func (r Rect) WithCenter(c Point) Rect {
	r.X = c.X - r.Width/2
	r.Y = c.Y - r.Height/2
	return r
}

// Offset returns r translated by p.
func (r Rect) Offset(p Point) Rect {
	r.X += p.X
	r.Y += p.Y
	return r
}

// Contains reports whether p lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", r.X, r.Y, r.Width, r.Height)
}

// start, length and end read one axis of the rectangle.
func (r Rect) start(a Axis) float64 {
	if a == Horizontal {
		return r.X
	}
	return r.Y
}

func (r Rect) length(a Axis) float64 {
	if a == Horizontal {
		return r.Width
	}
	return r.Height
}

func (r Rect) end(a Axis) float64 {
	return r.start(a) + r.length(a)
}

func (r *Rect) setStart(a Axis, v float64) {
	if a == Horizontal {
		r.X = v
	} else {
		r.Y = v
	}
}

func (r *Rect) setLength(a Axis, v float64) {
	if a == Horizontal {
		r.Width = v
	} else {
		r.Height = v
	}
}

// Axis selects the horizontal or vertical dimension.
type Axis uint8

const (
	Horizontal Axis = iota // X / width
	Vertical               // Y / height
)

// Cross returns the other axis.
func (a Axis) Cross() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Anchor names one edge of a rectangle.
type Anchor uint8

const (
	AnchorTop Anchor = iota
	AnchorBottom
	AnchorLeft
	AnchorRight
)

// Axis returns the axis the edge lies across.
func (a Anchor) Axis() Axis {
	if a == AnchorLeft || a == AnchorRight {
		return Horizontal
	}
	return Vertical
}

func (a Anchor) String() string {
	switch a {
	case AnchorTop:
		return "top"
	case AnchorBottom:
		return "bottom"
	case AnchorLeft:
		return "left"
	case AnchorRight:
		return "right"
	}
	return fmt.Sprintf("Anchor(%d)", uint8(a))
}

// ImageHandle is an opaque image reference owned by an asset collaborator.
// Nodes store it and pass it through to the renderer unopened.
type ImageHandle any
