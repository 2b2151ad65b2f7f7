package canvas

// Context is the subset of the HTML canvas 2D context the surface draws with.
// Coordinates are canvas-local.
type Context interface {
	SetLineWidth(width float64)
	SetStrokeStyle(style string)
	SetFillStyle(style string)

	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Stroke()

	// ToDataURL serializes the current bitmap, like HTMLCanvasElement.toDataURL.
	ToDataURL(mime string) (string, error)
}
