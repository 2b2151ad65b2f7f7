// Package imaging converts between images, data URLs and canvas style
// strings.
//
// The page moves bitmaps around as data URLs: the canvas is exported with
// toDataURL, the classifier receives it in a form field and answers with
// annotated images and crops in the same form. This package encodes and
// decodes those strings with github.com/disintegration/imaging and parses
// the color strings a 2D context accepts for fillStyle and strokeStyle.
//
// # Formats
//
// Only PNG and JPEG are produced. As with HTMLCanvasElement.toDataURL, an
// unsupported MIME type falls back to PNG, and the non-standard "image/jpg"
// is treated as JPEG.
//
// # Error Handling
//
// Strings that are not base64 data URLs return ErrNotDataURL; payload and
// codec failures are wrapped with context.
package imaging
