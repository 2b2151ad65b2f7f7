//go:build js && wasm

package dom

import (
	"fmt"
	"syscall/js"
)

// Context2D is a canvas.Context backed by a CanvasRenderingContext2D.
type Context2D struct {
	canvas js.Value
	ctx    js.Value
}

// NewContext2D acquires the 2D context of a canvas element.
func NewContext2D(canvas js.Value) (*Context2D, error) {
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, fmt.Errorf("canvas element not found")
	}
	ctx := canvas.Call("getContext", "2d")
	if ctx.IsNull() {
		return nil, fmt.Errorf("2d context unavailable")
	}
	return &Context2D{canvas: canvas, ctx: ctx}, nil
}

func (c *Context2D) SetLineWidth(width float64)  { c.ctx.Set("lineWidth", width) }
func (c *Context2D) SetStrokeStyle(style string) { c.ctx.Set("strokeStyle", style) }
func (c *Context2D) SetFillStyle(style string)   { c.ctx.Set("fillStyle", style) }

func (c *Context2D) FillRect(x, y, w, h float64)  { c.ctx.Call("fillRect", x, y, w, h) }
func (c *Context2D) ClearRect(x, y, w, h float64) { c.ctx.Call("clearRect", x, y, w, h) }

func (c *Context2D) BeginPath()          { c.ctx.Call("beginPath") }
func (c *Context2D) MoveTo(x, y float64) { c.ctx.Call("moveTo", x, y) }
func (c *Context2D) LineTo(x, y float64) { c.ctx.Call("lineTo", x, y) }
func (c *Context2D) ClosePath()          { c.ctx.Call("closePath") }
func (c *Context2D) Stroke()             { c.ctx.Call("stroke") }

// ToDataURL calls HTMLCanvasElement.toDataURL, converting a thrown
// SecurityError (tainted canvas) into an error.
func (c *Context2D) ToDataURL(mime string) (url string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("toDataURL failed: %v", r)
		}
	}()
	return c.canvas.Call("toDataURL", mime).String(), nil
}
