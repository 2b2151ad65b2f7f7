package canvas

// Point is a position in page or canvas-local coordinates.
type Point struct {
	X float64
	Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// OffsetNode is an element in an offsetParent chain.
type OffsetNode interface {
	OffsetLeft() float64
	OffsetTop() float64
	ScrollLeft() float64
	ScrollTop() float64
	// OffsetParent returns the next element up the chain, or false at the root.
	OffsetParent() (OffsetNode, bool)
}

// PageOffset walks the offsetParent chain starting at n and sums each
// element's offset minus its scroll position.
func PageOffset(n OffsetNode) Point {
	var off Point
	for n != nil {
		off.X += n.OffsetLeft() - n.ScrollLeft()
		off.Y += n.OffsetTop() - n.ScrollTop()

		parent, ok := n.OffsetParent()
		if !ok {
			break
		}
		n = parent
	}
	return off
}

// Box is a static OffsetNode, for headless use and tests.
type Box struct {
	Left, Top        float64
	ScrollX, ScrollY float64
	Parent           *Box
}

// OffsetLeft returns the left offset. A nil Box sits at the origin.
func (b *Box) OffsetLeft() float64 {
	if b == nil {
		return 0
	}
	return b.Left
}

// OffsetTop returns the top offset.
func (b *Box) OffsetTop() float64 {
	if b == nil {
		return 0
	}
	return b.Top
}

// ScrollLeft returns the horizontal scroll position.
func (b *Box) ScrollLeft() float64 {
	if b == nil {
		return 0
	}
	return b.ScrollX
}

// ScrollTop returns the vertical scroll position.
func (b *Box) ScrollTop() float64 {
	if b == nil {
		return 0
	}
	return b.ScrollY
}

// OffsetParent returns Parent, or false when there is none.
func (b *Box) OffsetParent() (OffsetNode, bool) {
	if b == nil || b.Parent == nil {
		return nil, false
	}
	return b.Parent, true
}
