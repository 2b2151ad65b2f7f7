//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/ironsheep/digitpad/internal/canvas"
)

// listener is one registered event handler, kept so it can be removed.
type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// Bind routes mouse events on canvasEl and touch events on body to s. Touch
// handlers are registered on the body so touches that start outside the
// canvas keep scrolling the page; only captured touches call
// preventDefault. The returned function removes every listener.
func Bind(s *canvas.Surface, canvasEl, body js.Value) (release func()) {
	var ls []listener
	on := func(target js.Value, event string, opts map[string]interface{}, handle func(e js.Value)) {
		fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			if len(args) > 0 {
				handle(args[0])
			}
			return nil
		})
		if opts != nil {
			target.Call("addEventListener", event, fn, opts)
		} else {
			target.Call("addEventListener", event, fn)
		}
		ls = append(ls, listener{target: target, event: event, fn: fn})
	}

	on(canvasEl, "mousedown", nil, func(e js.Value) { s.PointerDown(pagePoint(e)) })
	on(canvasEl, "mousemove", nil, func(e js.Value) { s.PointerMove(pagePoint(e)) })
	on(canvasEl, "mouseup", nil, func(e js.Value) { s.PointerUp(pagePoint(e)) })
	on(canvasEl, "mouseout", nil, func(e js.Value) { s.PointerLeave(pagePoint(e)) })

	// passive: false is required for preventDefault to stop scrolling
	active := map[string]interface{}{"passive": false}
	touch := func(event string, handle func([]canvas.Touch) bool) {
		on(body, event, active, func(e js.Value) {
			if handle(changedTouches(e)) {
				e.Call("preventDefault")
			}
		})
	}
	touch("touchstart", s.TouchStart)
	touch("touchmove", s.TouchMove)
	touch("touchend", s.TouchEnd)
	touch("touchcancel", func(t []canvas.Touch) bool {
		s.TouchCancel(t)
		return false
	})

	return func() {
		for _, l := range ls {
			l.target.Call("removeEventListener", l.event, l.fn)
			l.fn.Release()
		}
	}
}

func pagePoint(e js.Value) canvas.Point {
	return canvas.Point{X: e.Get("pageX").Float(), Y: e.Get("pageY").Float()}
}

func changedTouches(e js.Value) []canvas.Touch {
	list := e.Get("changedTouches")
	if list.IsUndefined() || list.IsNull() {
		return nil
	}
	touches := make([]canvas.Touch, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		t := list.Index(i)
		touches = append(touches, canvas.Touch{
			ID: t.Get("identifier").Int(),
			X:  t.Get("pageX").Float(),
			Y:  t.Get("pageY").Float(),
		})
	}
	return touches
}
