//go:build js && wasm

// Command digitpad is the browser side of the digit recognition demo. Build
// it with GOOS=js GOARCH=wasm and load it next to wasm_exec.js; the page
// buttons call digitpadPredict() and digitpadClear() (also registered under
// the legacy names predict() and clearCanvas()).
package main

import (
	"context"
	"log"
	"net/url"
	"syscall/js"

	"github.com/ironsheep/digitpad/internal/canvas"
	"github.com/ironsheep/digitpad/internal/config"
	"github.com/ironsheep/digitpad/internal/dom"
	"github.com/ironsheep/digitpad/internal/page"
	"github.com/ironsheep/digitpad/internal/predict"
)

// Version information - set by ldflags during build
var Version = "dev"

func main() {
	log.SetFlags(log.Lshortfile)

	global := js.Global()
	location := global.Get("location")

	cfg, err := config.FromQuery(location.Get("search").String())
	if err != nil {
		log.Printf("Configuration error: %v", err)
	}
	if cfg.Debug {
		log.Printf("digitpad %s: %+v", Version, cfg)
	}

	doc := global.Get("document")
	canvasEl := doc.Call("getElementById", cfg.CanvasID)
	ctx2d, err := dom.NewContext2D(canvasEl)
	if err != nil {
		log.Fatalf("Canvas #%s: %v", cfg.CanvasID, err)
	}
	canvasEl.Set("width", cfg.Width)
	canvasEl.Set("height", cfg.Height)

	surface := canvas.New(ctx2d, cfg.Width, cfg.Height, dom.NewElement(canvasEl))

	client := predict.NewClient(resolve(location.Get("href").String(), cfg.Endpoint),
		predict.WithDebug(cfg.Debug))

	pg := page.New(surface, client, dom.NewView(doc, dom.DefaultIDs, log.Default()),
		page.WithImageType(cfg.ImageType),
		page.WithTimeout(cfg.Timeout),
		page.WithDebug(cfg.Debug),
	)

	dom.Bind(pg.Surface(), canvasEl, doc.Get("body"))

	predictFn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		// js callbacks must not block on the network
		go pg.Predict(context.Background())
		return nil
	})
	clearFn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		pg.Clear()
		return nil
	})
	for _, name := range []string{"digitpadPredict", "predict"} {
		global.Set(name, predictFn)
	}
	for _, name := range []string{"digitpadClear", "clearCanvas"} {
		global.Set(name, clearFn)
	}

	select {}
}

// resolve makes endpoint absolute against the page URL.
func resolve(pageURL, endpoint string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return endpoint
	}
	ref, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	return base.ResolveReference(ref).String()
}
