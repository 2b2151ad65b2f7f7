// Package dom binds the digit pad to a live browser document through
// syscall/js.
//
// Context2D adapts a canvas element's 2D context to canvas.Context, Element
// adapts any element to canvas.OffsetNode, View implements results.View over
// the page's fixed element ids, and Bind routes mouse and touch events to a
// canvas.Surface.
//
// The package is empty outside GOOS=js GOARCH=wasm. Nothing in it blocks.
package dom
