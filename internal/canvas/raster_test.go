package canvas

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/ironsheep/digitpad/internal/imaging"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

// assertAllPixels fails unless every pixel of img equals want.
func assertAllPixels(t *testing.T, img *image.RGBA, want color.RGBA) {
	t.Helper()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func isDark(c color.RGBA) bool {
	return c.A == 255 && c.R < 64 && c.G < 64 && c.B < 64
}

func TestRaster_NewIsTransparent(t *testing.T) {
	r := NewRaster(20, 10)
	img := r.Snapshot()

	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", img.Bounds().Dx(), img.Bounds().Dy())
	}
	assertAllPixels(t, img, color.RGBA{})
}

func TestRaster_FillRect(t *testing.T) {
	r := NewRaster(50, 50)
	r.SetFillStyle("#ffffff")
	r.FillRect(0, 0, 50, 50)
	assertAllPixels(t, r.Snapshot(), white)

	r.SetFillStyle("#ff0000")
	r.FillRect(10, 10, 5, 5)
	img := r.Snapshot()
	if got := img.RGBAAt(12, 12); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside rect: got %v, want red", got)
	}
	if got := img.RGBAAt(20, 20); got != white {
		t.Errorf("outside rect: got %v, want white", got)
	}
}

func TestRaster_ClearRect(t *testing.T) {
	r := NewRaster(10, 10)
	r.SetFillStyle("black")
	r.FillRect(0, 0, 10, 10)
	r.ClearRect(0, 0, 10, 10)

	assertAllPixels(t, r.Snapshot(), color.RGBA{})
}

func TestRaster_InvalidStyleKeepsPrevious(t *testing.T) {
	r := NewRaster(4, 4)
	r.SetFillStyle("#00ff00")
	r.SetFillStyle("not-a-color")
	r.FillRect(0, 0, 4, 4)

	assertAllPixels(t, r.Snapshot(), color.RGBA{0, 255, 0, 255})
}

func TestRaster_StrokeHorizontalLine(t *testing.T) {
	r := NewRaster(60, 60)
	r.SetFillStyle("#ffffff")
	r.FillRect(0, 0, 60, 60)

	r.SetLineWidth(4)
	r.SetStrokeStyle("#000000")
	r.BeginPath()
	r.MoveTo(10, 20)
	r.LineTo(50, 20)
	r.Stroke()

	img := r.Snapshot()
	for _, x := range []int{12, 30, 48} {
		if got := img.RGBAAt(x, 19); !isDark(got) {
			t.Errorf("pixel (%d,19) on the line: got %v, want black", x, got)
		}
	}
	for _, p := range []image.Point{{30, 30}, {30, 10}, {5, 5}, {56, 20}} {
		if got := img.RGBAAt(p.X, p.Y); got != white {
			t.Errorf("pixel %v off the line: got %v, want white", p, got)
		}
	}
}

func TestRaster_StrokeSinglePointDrawsNothing(t *testing.T) {
	r := NewRaster(20, 20)
	r.SetFillStyle("white")
	r.FillRect(0, 0, 20, 20)

	r.BeginPath()
	r.MoveTo(10, 10)
	r.Stroke()

	assertAllPixels(t, r.Snapshot(), white)
}

func TestRaster_BeginPathDiscardsPath(t *testing.T) {
	r := NewRaster(40, 40)
	r.SetFillStyle("white")
	r.FillRect(0, 0, 40, 40)
	r.SetLineWidth(4)

	r.BeginPath()
	r.MoveTo(5, 5)
	r.LineTo(35, 5)
	r.BeginPath()
	r.Stroke()

	assertAllPixels(t, r.Snapshot(), white)
}

func TestRaster_SurfaceStroke(t *testing.T) {
	r := NewRaster(100, 100)
	s := New(r, 100, 100, &Box{Left: 10, Top: 10})
	assertAllPixels(t, r.Snapshot(), white)

	s.PointerDown(Point{X: 30, Y: 60})
	s.PointerMove(Point{X: 60, Y: 60})
	s.PointerUp(Point{X: 90, Y: 60})

	img := r.Snapshot()
	if got := img.RGBAAt(60, 49); !isDark(got) {
		t.Errorf("pixel on stroke: got %v, want black", got)
	}
	if got := img.RGBAAt(60, 80); got != white {
		t.Errorf("pixel off stroke: got %v, want white", got)
	}

	s.Clear()
	assertAllPixels(t, r.Snapshot(), white)
}

func TestRaster_ToDataURL(t *testing.T) {
	r := NewRaster(30, 20)
	r.SetFillStyle("#ffffff")
	r.FillRect(0, 0, 30, 20)

	tests := []struct {
		name     string
		mime     string
		wantMime string
	}{
		{"png", "image/png", "image/png"},
		{"jpeg", "image/jpeg", "image/jpeg"},
		{"jpg alias", "image/jpg", "image/jpeg"},
		{"unknown falls back to png", "image/webp", "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := r.ToDataURL(tt.mime)
			if err != nil {
				t.Fatalf("ToDataURL failed: %v", err)
			}
			if !strings.HasPrefix(url, "data:"+tt.wantMime+";base64,") {
				t.Errorf("prefix: got %.40s", url)
			}

			img, err := imaging.DecodeDataURL(url)
			if err != nil {
				t.Fatalf("DecodeDataURL failed: %v", err)
			}
			if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 20 {
				t.Errorf("dimensions: got %dx%d, want 30x20", img.Bounds().Dx(), img.Bounds().Dy())
			}
		})
	}
}
