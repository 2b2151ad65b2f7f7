package predict

import (
	"errors"

	"github.com/ironsheep/digitpad/internal/results"
)

// Render applies an outcome to the results view.
//
// The sentinel outcome only replaces the result text; the table keeps its
// rows. A prediction sets the result text and counter, shows the annotated
// image and rebuilds the table with one row per digit.
func Render(view results.View, out *Outcome) error {
	if out == nil {
		return errors.New("nil outcome")
	}
	if out.Empty {
		view.SetResultText(out.Message)
		return nil
	}

	p := out.Prediction
	if p == nil {
		return errors.New("outcome has neither message nor prediction")
	}

	if p.Answer != "" {
		view.SetResultText(p.Answer)
	}
	view.SetCounter(string(p.Counter))
	view.ShowResultImage(p.Image)

	view.ClearRows()
	for i, src := range p.SmallImages {
		var guesses []Guess
		if i < len(p.SmallPredictions) {
			guesses = p.SmallPredictions[i]
		}
		view.AppendRow(rowOf(src, guesses))
	}
	return nil
}

func rowOf(src string, guesses []Guess) results.Row {
	row := results.Row{ImageSrc: src}
	for i := 0; i < results.CellsPerRow && i < len(guesses); i++ {
		row.Cells[i] = guesses[i].String()
	}
	return row
}
