package ebitenui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/canopy"
)

// Texter is implemented by draw-path elements that carry a string to print
// inside the node's frame.
type Texter interface {
	Text() string
}

// Renderer is the canopy render collaborator for Ebitengine. Render copies
// the frame's draw list; Draw paints it onto a screen image.
//
// Each command draws, in order: the fill color (rounded when CornerRadius is
// set), the image scaled to the frame, every path element and the border.
// Path elements may be a string or a Texter (printed with the debug font),
// or a []canopy.Point (stroked polyline in node-local coordinates).
type Renderer struct {
	cmds       []canopy.DrawCommand
	whitePixel *ebiten.Image
	vertices   []ebiten.Vertex
	indices    []uint16
	path       vector.Path
}

// NewRenderer creates an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render implements canopy.Renderer.
func (r *Renderer) Render(cmds []canopy.DrawCommand) {
	clear(r.cmds)
	r.cmds = append(r.cmds[:0], cmds...)
}

// Commands returns the draw list captured by the last Render call. The
// slice is reused by the next Render.
func (r *Renderer) Commands() []canopy.DrawCommand {
	return r.cmds
}

// Draw paints the captured draw list onto screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	for i := range r.cmds {
		r.drawCommand(screen, &r.cmds[i])
	}
}

func (r *Renderer) drawCommand(dst *ebiten.Image, c *canopy.DrawCommand) {
	f := c.Frame
	x, y, w, h := float32(f.X), float32(f.Y), float32(f.Width), float32(f.Height)

	if c.Color.IsVisible() {
		if c.CornerRadius > 0 {
			r.fillRounded(dst, f, c.CornerRadius, c.Color)
		} else {
			vector.DrawFilledRect(dst, x, y, w, h, toRGBA(c.Color), false)
		}
	}

	if img, ok := c.Image.(*ebiten.Image); ok && img != nil {
		b := img.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(f.Width/float64(b.Dx()), f.Height/float64(b.Dy()))
			op.GeoM.Translate(f.X, f.Y)
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(img, &op)
		}
	}

	for _, p := range c.Paths {
		switch p := p.(type) {
		case string:
			ebitenutil.DebugPrintAt(dst, p, int(f.X)+4, int(f.Y)+2)
		case Texter:
			ebitenutil.DebugPrintAt(dst, p.Text(), int(f.X)+4, int(f.Y)+2)
		case []canopy.Point:
			r.strokePolyline(dst, f.Origin(), p, c.BorderColor)
		}
	}

	if c.BorderColor.IsVisible() {
		vector.StrokeRect(dst, x, y, w, h, 1, toRGBA(c.BorderColor), false)
	}
}

func (r *Renderer) strokePolyline(dst *ebiten.Image, origin canopy.Point, pts []canopy.Point, clr canopy.Color) {
	if !clr.IsVisible() {
		clr = canopy.ColorBlack
	}
	rgba := toRGBA(clr)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1].Add(origin), pts[i].Add(origin)
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, rgba, true)
	}
}

// fillRounded fills a rounded rectangle by triangulating an arc path.
func (r *Renderer) fillRounded(dst *ebiten.Image, f canopy.Rect, radius float64, clr canopy.Color) {
	rad := float32(min(radius, f.Width/2, f.Height/2))
	x0, y0 := float32(f.X), float32(f.Y)
	x1, y1 := float32(f.MaxX()), float32(f.MaxY())

	r.path = vector.Path{}
	r.path.MoveTo(x0+rad, y0)
	r.path.ArcTo(x1, y0, x1, y1, rad)
	r.path.ArcTo(x1, y1, x0, y1, rad)
	r.path.ArcTo(x0, y1, x0, y0, rad)
	r.path.ArcTo(x0, y0, x1, y0, rad)
	r.path.Close()

	r.vertices, r.indices = r.path.AppendVerticesAndIndicesForFilling(r.vertices[:0], r.indices[:0])
	cr, cg, cb, ca := premultiplied(clr)
	for i := range r.vertices {
		r.vertices[i].SrcX = 0.5
		r.vertices[i].SrcY = 0.5
		r.vertices[i].ColorR = cr
		r.vertices[i].ColorG = cg
		r.vertices[i].ColorB = cb
		r.vertices[i].ColorA = ca
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(r.vertices, r.indices, r.white(), op)
}

func (r *Renderer) white() *ebiten.Image {
	if r.whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.whitePixel
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func premultiplied(c canopy.Color) (r, g, b, a float32) {
	a64 := clamp01(c.A)
	return float32(clamp01(c.R) * a64), float32(clamp01(c.G) * a64), float32(clamp01(c.B) * a64), float32(a64)
}

// toRGBA converts to premultiplied 8-bit color.
func toRGBA(c canopy.Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}
