// Package canvas implements the drawing surface of the digit pad.
//
// A Surface turns pointer and touch input, given in page coordinates, into
// strokes on a 2D drawing context. The context is an interface so the same
// Surface drives the browser's CanvasRenderingContext2D (see package dom) or
// the pure-Go Raster used headlessly and in tests.
//
// # Coordinate System
//
// Page coordinates are translated to canvas-local ones by subtracting the
// cumulative offset of the canvas element, computed once when the Surface is
// created. Canvas-local (0,0) is the top-left corner; a point is inside the
// canvas only when 0 < x < width and 0 < y < height.
//
// # Strokes
//
// Every stroke is drawn black with a line width of 4. Mouse strokes extend a
// single path from pointer-down to pointer-up; each active touch is tracked
// by identifier and drawn as independent segments, so several fingers can
// draw at once.
package canvas
