//go:build js && wasm

package dom

import (
	"log"
	"strconv"
	"sync"
	"syscall/js"

	"github.com/ironsheep/digitpad/internal/results"
)

// IDs names the page elements the results view writes to.
type IDs struct {
	ResultText  string
	Counter     string
	Clicks      string
	ResultImage string
	Table       string
}

// DefaultIDs are the ids used by the demo page markup.
var DefaultIDs = IDs{
	ResultText:  "rec_result",
	Counter:     "pred_count",
	Clicks:      "clicks",
	ResultImage: "image1",
	Table:       "table",
}

// View is a results.View over the live document. Missing elements are
// logged once each and the update is skipped.
type View struct {
	doc    js.Value
	ids    IDs
	logger *log.Logger

	mu      sync.Mutex
	missing map[string]bool
}

var _ results.View = (*View)(nil)

// NewView creates a View over doc. A nil logger means log.Default().
func NewView(doc js.Value, ids IDs, logger *log.Logger) *View {
	if logger == nil {
		logger = log.Default()
	}
	return &View{
		doc:     doc,
		ids:     ids,
		logger:  logger,
		missing: make(map[string]bool),
	}
}

func (v *View) element(id string) (js.Value, bool) {
	el := v.doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		v.mu.Lock()
		if !v.missing[id] {
			v.missing[id] = true
			v.logger.Printf("Element #%s not found; updates to it are skipped", id)
		}
		v.mu.Unlock()
		return js.Undefined(), false
	}
	return el, true
}

func (v *View) setText(id, text string) {
	if el, ok := v.element(id); ok {
		el.Set("textContent", text)
	}
}

func (v *View) SetResultText(text string) { v.setText(v.ids.ResultText, text) }
func (v *View) SetCounter(text string)    { v.setText(v.ids.Counter, text) }
func (v *View) SetClicks(n int)           { v.setText(v.ids.Clicks, strconv.Itoa(n)) }

func (v *View) ShowResultImage(src string) {
	if el, ok := v.element(v.ids.ResultImage); ok {
		el.Get("style").Set("display", "block")
		el.Set("src", src)
	}
}

func (v *View) HideResultImage() {
	if el, ok := v.element(v.ids.ResultImage); ok {
		el.Get("style").Set("display", "none")
	}
}

// ClearRows removes every table row but the first, which holds the headings.
func (v *View) ClearRows() {
	table, ok := v.element(v.ids.Table)
	if !ok {
		return
	}
	rows := table.Call("querySelectorAll", "tr")
	for i := rows.Length() - 1; i >= 1; i-- {
		rows.Index(i).Call("remove")
	}
}

// AppendRow adds a row holding the digit crop followed by one cell per guess.
func (v *View) AppendRow(row results.Row) {
	table, ok := v.element(v.ids.Table)
	if !ok {
		return
	}
	body := table
	if bodies := table.Call("getElementsByTagName", "tbody"); bodies.Length() > 0 {
		body = bodies.Index(0)
	}

	tr := v.doc.Call("createElement", "tr")

	img := v.doc.Call("createElement", "img")
	img.Set("src", row.ImageSrc)
	imgCell := v.doc.Call("createElement", "td")
	imgCell.Call("appendChild", img)
	tr.Call("appendChild", imgCell)

	for _, text := range row.Cells {
		td := v.doc.Call("createElement", "td")
		td.Call("appendChild", v.doc.Call("createTextNode", text))
		tr.Call("appendChild", td)
	}

	body.Call("appendChild", tr)
}
