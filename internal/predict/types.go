package predict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Sentinel is the backend's reply when the canvas holds no digits.
const Sentinel = "Can't predict, when nothing is drawn"

// Outcome is the result of one submission. Exactly one of Empty or
// Prediction is set.
type Outcome struct {
	// Empty is true when the backend answered with Sentinel.
	Empty bool

	// Message is the text to show for an Empty outcome.
	Message string

	Prediction *Prediction
}

// Prediction is the structured classifier response.
type Prediction struct {
	// Answer is the space-separated digits read from the whole canvas.
	Answer string `json:"answer"`

	// Counter is the backend's running prediction count.
	Counter Text `json:"counter"`

	// Image is the canvas annotated with one box per digit, as a data URL.
	Image string `json:"image"`

	// SmallImages are the per-digit crops, as data URLs.
	SmallImages []string `json:"small_images"`

	// SmallPredictions holds the ranked guesses for each crop.
	SmallPredictions [][]Guess `json:"small_predictions"`
}

// Text is a JSON string or number kept in its display form.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*t = Text(n.String())
	return nil
}

// Guess is one ranked label for a digit.
type Guess struct {
	Label      string
	Confidence float64
	// HasConfidence is false when the backend sent a bare label.
	HasConfidence bool
}

// String renders the guess as a table cell.
func (g Guess) String() string {
	if !g.HasConfidence {
		return g.Label
	}
	return g.Label + ": " + strconv.FormatFloat(g.Confidence, 'f', -1, 64)
}

func (g *Guess) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty guess")
	}

	switch data[0] {
	case '[':
		var pair []json.RawMessage
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if len(pair) == 0 || len(pair) > 2 {
			return fmt.Errorf("guess pair has %d elements", len(pair))
		}
		var label Text
		if err := json.Unmarshal(pair[0], &label); err != nil {
			return fmt.Errorf("guess label: %w", err)
		}
		*g = Guess{Label: string(label)}
		if len(pair) == 2 {
			if err := json.Unmarshal(pair[1], &g.Confidence); err != nil {
				return fmt.Errorf("guess confidence: %w", err)
			}
			g.HasConfidence = true
		}
		return nil
	default:
		var label Text
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		*g = Guess{Label: string(label)}
		return nil
	}
}
