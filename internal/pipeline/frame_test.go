package pipeline

import (
	"image"
	"image/color"
	"testing"

	"github.com/genricoloni/umbra/internal/domain"
)

// testFrame builds an opaque RGBA frame with a deterministic pixel
// pattern.
func testFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((x * 7) % 256),
				G: uint8((y * 13) % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

// toRGBA converts an opaque NRGBA frame back to RGBA byte-for-byte.
func toRGBA(src *image.NRGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

func framesEqual(a, b *image.NRGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

func TestInvertInvertIdentity(t *testing.T) {
	mon := domain.ScreenRect{Left: 0, Top: 0, Right: 32, Bottom: 16}
	src := testFrame(32, 16)

	once := Compose(src, mon, nil)
	twice := Compose(toRGBA(once), mon, nil)

	for i := range src.Pix {
		if twice.Pix[i] != src.Pix[i] {
			t.Fatalf("pix[%d]: invert(invert(v)) = %d, want %d", i, twice.Pix[i], src.Pix[i])
		}
	}
}

func TestComposeInvertsEveryChannel(t *testing.T) {
	mon := domain.ScreenRect{Left: 0, Top: 0, Right: 4, Bottom: 4}
	src := testFrame(4, 4)

	out := Compose(src, mon, nil)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			o := out.NRGBAAt(x, y)
			s := src.RGBAAt(x, y)
			if o.R != 255-s.R || o.G != 255-s.G || o.B != 255-s.B {
				t.Fatalf("pixel (%d,%d): got %v from %v", x, y, o, s)
			}
			if o.A != 255 {
				t.Fatalf("pixel (%d,%d): alpha = %d", x, y, o.A)
			}
		}
	}
}

func TestExclusionRestoresOriginalPixels(t *testing.T) {
	// Monitor at a non-zero origin to exercise coordinate translation.
	mon := domain.ScreenRect{Left: 1920, Top: 100, Right: 1984, Bottom: 132} // 64x32
	src := testFrame(64, 32)

	// Excluded rect in absolute screen coordinates, fully inside.
	excl := domain.ScreenRect{Left: 1930, Top: 110, Right: 1950, Bottom: 120}
	out := Compose(src, mon, []domain.ScreenRect{excl})

	local := excl.Translate(-mon.Left, -mon.Top)
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			s := src.RGBAAt(x, y)
			o := out.NRGBAAt(x, y)
			inside := x >= local.Left && x < local.Right && y >= local.Top && y < local.Bottom
			if inside {
				if o.R != s.R || o.G != s.G || o.B != s.B {
					t.Fatalf("pixel (%d,%d) inside exclusion not restored: got %v want %v", x, y, o, s)
				}
			} else {
				if o.R != 255-s.R || o.G != 255-s.G || o.B != 255-s.B {
					t.Fatalf("pixel (%d,%d) outside exclusion not inverted: got %v from %v", x, y, o, s)
				}
			}
		}
	}
}

func TestExclusionIdempotence(t *testing.T) {
	mon := domain.ScreenRect{Left: 0, Top: 0, Right: 40, Bottom: 40}
	src := testFrame(40, 40)

	rects := []domain.ScreenRect{
		{Left: 5, Top: 5, Right: 20, Bottom: 20},
		{Left: 10, Top: 10, Right: 30, Bottom: 30}, // overlaps the first
	}
	doubled := append(append([]domain.ScreenRect{}, rects...), rects...)

	once := Compose(src, mon, rects)
	twiceApplied := Compose(src, mon, doubled)

	if !framesEqual(once, twiceApplied) {
		t.Error("applying the same exclusion set twice changed the result")
	}
}

func TestExclusionClipping(t *testing.T) {
	mon := domain.ScreenRect{Left: 0, Top: 0, Right: 20, Bottom: 20}
	src := testFrame(20, 20)

	tests := []struct {
		name string
		rect domain.ScreenRect
		// wantRestored is the frame-local region expected untouched by
		// inversion; zero value means fully inverted output.
		wantRestored domain.ScreenRect
	}{
		{
			name:         "Partially Outside",
			rect:         domain.ScreenRect{Left: -10, Top: -10, Right: 5, Bottom: 5},
			wantRestored: domain.ScreenRect{Left: 0, Top: 0, Right: 5, Bottom: 5},
		},
		{
			name:         "Overhanging Right Bottom",
			rect:         domain.ScreenRect{Left: 15, Top: 15, Right: 100, Bottom: 100},
			wantRestored: domain.ScreenRect{Left: 15, Top: 15, Right: 20, Bottom: 20},
		},
		{
			name: "Fully Outside",
			rect: domain.ScreenRect{Left: 50, Top: 50, Right: 80, Bottom: 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Compose(src, mon, []domain.ScreenRect{tt.rect})
			for y := 0; y < 20; y++ {
				for x := 0; x < 20; x++ {
					s := src.RGBAAt(x, y)
					o := out.NRGBAAt(x, y)
					inside := tt.wantRestored.Valid() &&
						x >= tt.wantRestored.Left && x < tt.wantRestored.Right &&
						y >= tt.wantRestored.Top && y < tt.wantRestored.Bottom
					if inside && o.R != s.R {
						t.Fatalf("pixel (%d,%d) should be restored", x, y)
					}
					if !inside && o.R != 255-s.R {
						t.Fatalf("pixel (%d,%d) should be inverted", x, y)
					}
				}
			}
		})
	}
}
