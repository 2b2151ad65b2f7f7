// Package page ties the drawing surface, the classifier client and the
// results view together into the actions behind the page's buttons.
package page

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ironsheep/digitpad/internal/canvas"
	"github.com/ironsheep/digitpad/internal/imaging"
	"github.com/ironsheep/digitpad/internal/predict"
	"github.com/ironsheep/digitpad/internal/results"
)

// Submitter sends an encoded drawing to the classifier.
type Submitter interface {
	Submit(ctx context.Context, dataURL string) (*predict.Outcome, error)
}

// Page is one digit pad: a canvas, its results area and a classifier.
type Page struct {
	surface *canvas.Surface
	client  Submitter
	view    results.View

	imageType string
	timeout   time.Duration
	logger    *log.Logger
	debug     bool

	mu     sync.Mutex
	clicks int
}

// Option configures a Page.
type Option func(*Page)

// WithImageType sets the MIME type drawings are encoded as.
func WithImageType(mime string) Option {
	return func(p *Page) {
		p.imageType = mime
	}
}

// WithTimeout bounds each prediction request. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Page) {
		p.timeout = d
	}
}

// WithLogger sets the logger for failures and debug output.
func WithLogger(l *log.Logger) Option {
	return func(p *Page) {
		p.logger = l
	}
}

// WithDebug enables debug output.
func WithDebug(debug bool) Option {
	return func(p *Page) {
		p.debug = debug
	}
}

// New creates a Page.
func New(surface *canvas.Surface, client Submitter, view results.View, opts ...Option) *Page {
	p := &Page{
		surface:   surface,
		client:    client,
		view:      view,
		imageType: imaging.MimePNG,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Surface returns the drawing surface input events should be sent to.
func (p *Page) Surface() *canvas.Surface {
	return p.surface
}

// Clicks returns how many predictions have been requested.
func (p *Page) Clicks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clicks
}

// Predict submits the current drawing and shows the outcome. Failures are
// shown in the result text as well as returned.
//
// Predict blocks until the classifier answers; callers on a UI thread should
// run it in its own goroutine. Concurrent calls are not serialized.
func (p *Page) Predict(ctx context.Context) error {
	p.mu.Lock()
	p.clicks++
	clicks := p.clicks
	p.mu.Unlock()
	p.view.SetClicks(clicks)

	err := p.predict(ctx)
	if err != nil {
		p.logger.Printf("Prediction failed: %v", err)
		p.view.SetResultText(fmt.Sprintf("Prediction failed: %v", err))
	}
	return err
}

func (p *Page) predict(ctx context.Context) error {
	dataURL, err := p.surface.Encode(p.imageType)
	if err != nil {
		return fmt.Errorf("failed to encode canvas: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := p.client.Submit(ctx, dataURL)
	if err != nil {
		return err
	}
	if p.debug {
		p.logger.Printf("Prediction took %v (empty=%v)", time.Since(start), out.Empty)
	}

	return predict.Render(p.view, out)
}

// Clear erases the canvas and resets the results area.
func (p *Page) Clear() {
	p.surface.Clear()
	p.view.SetResultText("")
	p.view.HideResultImage()
	p.view.ClearRows()
}
