// Package predict submits drawings to the digit classifier and renders
// what it returns.
//
// # Protocol
//
// The classifier is a single endpoint (by default "/hook2"). The client
// POSTs an application/x-www-form-urlencoded body with one field,
// imageBase64, holding the canvas bitmap as a data URL. The backend answers
// either with the plain text "Can't predict, when nothing is drawn" or with
// a JSON document:
//
//	{
//	  "answer": "4 2",
//	  "counter": 118,
//	  "image": "data:image/png;base64,...",
//	  "small_images": ["data:image/png;base64,...", "..."],
//	  "small_predictions": [["4", "9", "7"], ["2", "7", "3"]]
//	}
//
// small_images and small_predictions are parallel: one entry per digit the
// backend found, each prediction list ordered best first. A guess may be a
// preformatted string, a number, or a [label, confidence] pair.
//
// # Error Handling
//
// Submit never panics on bad input. Non-2xx responses wrap ErrStatus,
// undecodable or inconsistent bodies wrap ErrMalformed, and transport
// failures are returned wrapped as-is so callers can test for
// context.DeadlineExceeded.
package predict
