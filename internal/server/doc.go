// Package server implements the digit pad development server.
//
// The page is a static bundle (index.html, wasm_exec.js and the compiled
// digitpad.wasm) that posts drawings to a classifier on its own origin. The
// server serves that bundle and forwards the classifier endpoint to a
// separately running backend, so the page can be developed without CORS or
// a combined deployment.
//
// # Routes
//
//   - GET /health: JSON status, including whether a backend is configured
//   - POST <endpoint> (default /hook2): validated and proxied to the backend
//   - GET /...: files from the static directory
//
// # Validation
//
// Before forwarding, the server checks that the form field imageBase64
// holds a base64 data URL that decodes as an image. Requests that fail the
// check get a 400 JSON error instead of reaching the backend. The backend's
// reply, including the "nothing drawn" sentinel, is passed through as-is.
//
// # Error Handling
//
// Errors produced by the server itself are JSON bodies of the form
//
//	{"code": "invalid_image", "message": "...", "details": "..."}
//
// with 400 for bad requests, 502 when the backend cannot be reached and 503
// when no backend is configured.
//
// # Usage
//
//	cfg, err := config.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := server.New(cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(srv.Run(ctx))
package server
