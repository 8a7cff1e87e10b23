// Package export writes a scene out as PNG or PDF.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"SlideBoard/internal/logging"
	"SlideBoard/internal/raster"
	"SlideBoard/internal/state"
)

var ErrBadSize = errors.New("export: bad image size")

// MaxSide bounds both dimensions of a rasterized image.
const MaxSide = 8192

// Rasterize paints the scene's shapes into a new width×height image. The
// selection overlay is left out. Each side must be in 1..MaxSide.
func Rasterize(s *state.Scene, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 || width > MaxSide || height > MaxSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	buf := raster.NewBuffer(width, height)
	s.RenderShapes(buf)
	return buf.Image(), nil
}

// PNG renders the scene at width×height and encodes it.
func PNG(w io.Writer, s *state.Scene, width, height int) error {
	img, err := Rasterize(s, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	logging.Logger().Debug("export: png written", "width", width, "height", height)
	return nil
}

// Thumbnail renders the scene at width×height and scales the result so its
// longer side is at most maxSide pixels.
func Thumbnail(w io.Writer, s *state.Scene, width, height, maxSide int) error {
	if maxSide <= 0 {
		return fmt.Errorf("%w: max side %d", ErrBadSize, maxSide)
	}
	img, err := Rasterize(s, width, height)
	if err != nil {
		return err
	}
	tw, th := fit(width, height, maxSide)
	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	if err := png.Encode(w, dst); err != nil {
		return fmt.Errorf("export: encode thumbnail: %w", err)
	}
	return nil
}

func fit(w, h, maxSide int) (int, int) {
	if w <= maxSide && h <= maxSide {
		return w, h
	}
	if w >= h {
		return maxSide, max(1, h*maxSide/w)
	}
	return max(1, w*maxSide/h), maxSide
}
