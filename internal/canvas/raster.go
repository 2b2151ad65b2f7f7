package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/vector"

	"github.com/ironsheep/digitpad/internal/imaging"
)

// circleSegments is the polygon resolution used for round joins and caps.
const circleSegments = 16

// Raster is a Context backed by an in-memory RGBA bitmap.
//
// Strokes are rendered with round joins and caps, anti-aliased by
// golang.org/x/image/vector. Invalid style strings are ignored, leaving the
// previous style in place, as browsers do.
type Raster struct {
	mu sync.Mutex

	img       *image.RGBA
	lineWidth float64
	stroke    color.RGBA
	fill      color.RGBA

	// subpaths of the current path
	path [][]Point
}

// NewRaster creates a transparent width x height bitmap with the canvas
// default state: 1-unit black stroke and black fill.
func NewRaster(width, height int) *Raster {
	return &Raster{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		lineWidth: 1,
		stroke:    color.RGBA{0, 0, 0, 255},
		fill:      color.RGBA{0, 0, 0, 255},
	}
}

// SetLineWidth sets the stroke width. Non-positive widths are ignored.
func (r *Raster) SetLineWidth(width float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width > 0 && !math.IsInf(width, 0) && !math.IsNaN(width) {
		r.lineWidth = width
	}
}

func (r *Raster) SetStrokeStyle(style string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, err := imaging.ParseStyle(style); err == nil {
		r.stroke = c
	}
}

func (r *Raster) SetFillStyle(style string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, err := imaging.ParseStyle(style); err == nil {
		r.fill = c
	}
}

// FillRect composites the fill color over the given rectangle.
func (r *Raster) FillRect(x, y, w, h float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draw.Draw(r.img, rectOf(x, y, w, h), image.NewUniform(r.fill), image.Point{}, draw.Over)
}

// ClearRect sets the given rectangle to transparent black.
func (r *Raster) ClearRect(x, y, w, h float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draw.Draw(r.img, rectOf(x, y, w, h), image.Transparent, image.Point{}, draw.Src)
}

func rectOf(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	).Canon()
}

// BeginPath discards the current path.
func (r *Raster) BeginPath() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = nil
}

// MoveTo starts a new subpath at (x, y).
func (r *Raster) MoveTo(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = append(r.path, []Point{{X: x, Y: y}})
}

// LineTo adds a segment to the current subpath, or starts one at (x, y)
// when the path is empty.
func (r *Raster) LineTo(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.path) == 0 {
		r.path = append(r.path, []Point{{X: x, Y: y}})
		return
	}
	last := len(r.path) - 1
	r.path[last] = append(r.path[last], Point{X: x, Y: y})
}

// ClosePath joins the current subpath back to its first point and starts a
// new subpath there.
func (r *Raster) ClosePath() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.path) == 0 {
		return
	}
	sub := r.path[len(r.path)-1]
	if len(sub) > 1 {
		r.path[len(r.path)-1] = append(sub, sub[0])
	}
	r.path = append(r.path, []Point{sub[0]})
}

// Stroke renders every subpath of the current path with the stroke style.
// Subpaths with a single point render nothing.
func (r *Raster) Stroke() {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over

	hw := r.lineWidth / 2
	drawn := false
	for _, sub := range r.path {
		if len(sub) < 2 {
			continue
		}
		for i := 0; i < len(sub); i++ {
			addDisc(z, sub[i], hw)
			if i > 0 {
				addQuad(z, sub[i-1], sub[i], hw)
			}
		}
		drawn = true
	}
	if !drawn {
		return
	}
	z.Draw(r.img, b, image.NewUniform(r.stroke), image.Point{})
}

// addQuad adds the rectangle covering segment a-b with half width hw. The
// winding matches addDisc so overlapping shapes do not cancel out.
func addQuad(z *vector.Rasterizer, a, b Point, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*hw, dx/length*hw

	z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	z.ClosePath()
}

func addDisc(z *vector.Rasterizer, c Point, radius float64) {
	for i := 0; i < circleSegments; i++ {
		t := -2 * math.Pi * float64(i) / circleSegments
		x := float32(c.X + radius*math.Cos(t))
		y := float32(c.Y + radius*math.Sin(t))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// Snapshot returns a copy of the current bitmap.
func (r *Raster) Snapshot() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone.AsRGBA(r.img)
}

// ToDataURL encodes a snapshot of the bitmap.
func (r *Raster) ToDataURL(mime string) (string, error) {
	return imaging.EncodeDataURL(r.Snapshot(), mime)
}
