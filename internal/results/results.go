// Package results describes the part of the page that shows predictions.
//
// View is the set of DOM updates the page performs: the result message, the
// prediction counter, the submission click counter, the annotated image and
// the table of per-digit predictions. Panel is an in-memory View; package
// dom binds the same interface to the live document.
package results

import "sync"

// CellsPerRow is the number of guesses shown for each digit.
const CellsPerRow = 3

// Row is one line of the predictions table: a cropped digit and its top
// guesses, best first.
type Row struct {
	ImageSrc string
	Cells    [CellsPerRow]string
}

// View is the results area of the page.
type View interface {
	SetResultText(text string)
	SetCounter(text string)
	SetClicks(n int)
	ShowResultImage(src string)
	HideResultImage()
	// ClearRows removes every data row, keeping the header.
	ClearRows()
	AppendRow(row Row)
}

// State is what a Panel currently shows.
type State struct {
	ResultText   string
	Counter      string
	Clicks       int
	ImageSrc     string
	ImageVisible bool
	Rows         []Row
}

// Panel is a View kept in memory. The zero value is an empty panel.
type Panel struct {
	mu    sync.Mutex
	state State
}

// SetResultText replaces the result message.
func (p *Panel) SetResultText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.ResultText = text
}

// SetCounter replaces the prediction counter text.
func (p *Panel) SetCounter(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Counter = text
}

// SetClicks records the number of submissions.
func (p *Panel) SetClicks(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Clicks = n
}

// ShowResultImage makes the annotated image visible with src.
func (p *Panel) ShowResultImage(src string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.ImageSrc = src
	p.state.ImageVisible = true
}

// HideResultImage hides the annotated image. Its source is kept.
func (p *Panel) HideResultImage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.ImageVisible = false
}

// ClearRows drops every table row.
func (p *Panel) ClearRows() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Rows = nil
}

// AppendRow adds row at the end of the table.
func (p *Panel) AppendRow(row Row) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Rows = append(p.state.Rows, row)
}

// Snapshot returns a copy of the panel state.
func (p *Panel) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.state
	s.Rows = append([]Row(nil), p.state.Rows...)
	return s
}
