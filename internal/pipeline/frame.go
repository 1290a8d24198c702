package pipeline

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/umbra/internal/domain"
)

// Compose produces one overlay frame: the captured frame inverted
// everywhere except inside the excluded rectangles, where the original
// pixels are restored. Excluded rects arrive in absolute screen
// coordinates and are clipped to the frame; rects that fall entirely
// outside contribute nothing. Restoring is idempotent, so overlapping
// rects are harmless.
//
// Inversion maps every channel value v to 255-v, which is its own
// inverse over the 0..255 domain.
func Compose(src *image.RGBA, monitor domain.ScreenRect, excluded []domain.ScreenRect) *image.NRGBA {
	out := imaging.Invert(src)

	// Common fast path: nothing to exclude, nothing extra to allocate.
	if len(excluded) == 0 {
		return out
	}

	orig := imaging.Clone(src)
	frame := out.Bounds() // zero-origin, frame-local
	for _, r := range excluded {
		local := r.Translate(-monitor.Left, -monitor.Top).ToImage().Intersect(frame)
		if local.Empty() {
			continue
		}
		restore(out, orig, local)
	}
	return out
}

// restore copies the rows of r from src back into dst. Both images are
// NRGBA with identical zero-origin bounds.
func restore(dst, src *image.NRGBA, r image.Rectangle) {
	rowBytes := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		so := src.PixOffset(r.Min.X, y)
		do := dst.PixOffset(r.Min.X, y)
		copy(dst.Pix[do:do+rowBytes], src.Pix[so:so+rowBytes])
	}
}
