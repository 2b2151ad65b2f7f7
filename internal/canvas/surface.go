package canvas

import (
	"sort"
	"sync"
)

// Pen and background used for every stroke.
const (
	StrokeWidth = 4.0
	StrokeStyle = "#000000"
	Background  = "#ffffff"
)

// Touch is one changed touch point of a touch event, in page coordinates.
type Touch struct {
	ID int
	X  float64
	Y  float64
}

// Point returns the touch position.
func (t Touch) Point() Point {
	return Point{X: t.X, Y: t.Y}
}

// Surface owns a drawing context and the input state that drives it.
//
// Surface is safe for concurrent use; in the browser all input arrives on
// the event loop, but a submission goroutine may call Encode while input
// handlers are running.
type Surface struct {
	mu sync.Mutex

	ctx    Context
	width  float64
	height float64
	offset Point

	drawing bool
	touches map[int]Touch
}

// New paints ctx opaque white and caches the page offset of origin, the
// canvas element. A nil origin means the canvas sits at the page origin.
func New(ctx Context, width, height int, origin OffsetNode) *Surface {
	s := &Surface{
		ctx:     ctx,
		width:   float64(width),
		height:  float64(height),
		touches: make(map[int]Touch),
	}
	if origin != nil {
		s.offset = PageOffset(origin)
	}
	s.paintBackground()
	return s
}

// Size returns the canvas dimensions.
func (s *Surface) Size() (width, height int) {
	return int(s.width), int(s.height)
}

// Offset returns the cached page offset of the canvas.
func (s *Surface) Offset() Point {
	return s.offset
}

// Translate maps a page coordinate to a canvas-local one.
func (s *Surface) Translate(page Point) Point {
	return page.Sub(s.offset)
}

// Contains reports whether a canvas-local point lies strictly inside the canvas.
func (s *Surface) Contains(p Point) bool {
	return p.X > 0 && p.X < s.width && p.Y > 0 && p.Y < s.height
}

// Drawing reports whether a mouse stroke is in progress.
func (s *Surface) Drawing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing
}

// ActiveTouches returns the identifiers of tracked touches in ascending order.
func (s *Surface) ActiveTouches() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.touches))
	for id := range s.touches {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// PointerDown starts a stroke at page position p.
func (s *Surface) PointerDown(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc := s.Translate(p)
	if !s.Contains(loc) {
		return
	}

	s.ctx.SetLineWidth(StrokeWidth)
	s.ctx.SetStrokeStyle(StrokeStyle)
	s.ctx.BeginPath()
	s.ctx.MoveTo(loc.X, loc.Y)
	s.drawing = true
}

// PointerMove extends the current stroke to p and renders it. Moves without
// a preceding PointerDown are ignored.
func (s *Surface) PointerMove(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extend(p)
}

// PointerUp ends the current stroke at p.
func (s *Surface) PointerUp(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.drawing {
		return
	}
	s.extend(p)
	s.ctx.ClosePath()
	s.drawing = false
}

// PointerLeave ends the current stroke where the pointer left the canvas.
func (s *Surface) PointerLeave(p Point) {
	s.PointerUp(p)
}

func (s *Surface) extend(p Point) {
	if !s.drawing {
		return
	}
	loc := s.Translate(p)
	s.ctx.LineTo(loc.X, loc.Y)
	s.ctx.Stroke()
}

// TouchStart records every touch that starts inside the canvas. It reports
// whether any touch was captured; uncaptured touches should be left to the
// browser so the page can still scroll.
func (s *Surface) TouchStart(touches []Touch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	captured := false
	for _, t := range touches {
		if !s.Contains(s.Translate(t.Point())) {
			continue
		}
		s.touches[t.ID] = t
		captured = true
	}
	return captured
}

// TouchMove draws a segment from each tracked touch's last position to its
// new one. Touches outside the canvas are ignored and keep their record.
func (s *Surface) TouchMove(touches []Touch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	captured := false
	for _, t := range touches {
		loc := s.Translate(t.Point())
		if !s.Contains(loc) {
			continue
		}
		captured = true

		last, ok := s.touches[t.ID]
		if !ok {
			continue
		}
		s.segment(s.Translate(last.Point()), loc)
		s.touches[t.ID] = t
	}
	return captured
}

// TouchEnd draws the final segment of each tracked touch that ends inside
// the canvas and forgets the touch wherever it ended.
func (s *Surface) TouchEnd(touches []Touch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	captured := false
	for _, t := range touches {
		last, ok := s.touches[t.ID]
		if !ok {
			continue
		}
		delete(s.touches, t.ID)

		loc := s.Translate(t.Point())
		if !s.Contains(loc) {
			continue
		}
		captured = true
		s.segment(s.Translate(last.Point()), loc)
	}
	return captured
}

// TouchCancel forgets the given touches without drawing.
func (s *Surface) TouchCancel(touches []Touch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range touches {
		delete(s.touches, t.ID)
	}
}

func (s *Surface) segment(from, to Point) {
	s.ctx.BeginPath()
	s.ctx.MoveTo(from.X, from.Y)
	s.ctx.LineTo(to.X, to.Y)
	s.ctx.SetLineWidth(StrokeWidth)
	s.ctx.SetStrokeStyle(StrokeStyle)
	s.ctx.Stroke()
}

// Clear erases the canvas to opaque white and drops any stroke in progress.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx.ClearRect(0, 0, s.width, s.height)
	s.paintBackground()
	s.ctx.BeginPath()
	s.drawing = false
	s.touches = make(map[int]Touch)
}

func (s *Surface) paintBackground() {
	s.ctx.SetFillStyle(Background)
	s.ctx.FillRect(0, 0, s.width, s.height)
}

// Encode returns the canvas bitmap as a data URL of the given MIME type.
func (s *Surface) Encode(mime string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.ToDataURL(mime)
}
