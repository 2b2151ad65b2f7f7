//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/ironsheep/digitpad/internal/canvas"
)

// Element is a canvas.OffsetNode over a DOM element.
type Element struct {
	v js.Value
}

// NewElement wraps v.
func NewElement(v js.Value) Element {
	return Element{v: v}
}

func (e Element) OffsetLeft() float64 { return e.v.Get("offsetLeft").Float() }
func (e Element) OffsetTop() float64  { return e.v.Get("offsetTop").Float() }
func (e Element) ScrollLeft() float64 { return e.v.Get("scrollLeft").Float() }
func (e Element) ScrollTop() float64  { return e.v.Get("scrollTop").Float() }

// OffsetParent follows offsetParent, which is null for the body and for
// fixed or hidden elements.
func (e Element) OffsetParent() (canvas.OffsetNode, bool) {
	p := e.v.Get("offsetParent")
	if p.IsNull() || p.IsUndefined() {
		return nil, false
	}
	return Element{v: p}, true
}
