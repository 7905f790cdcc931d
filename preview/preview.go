// Package preview renders generated paths to an image without any
// host viewport: an orthographic projection of each icicle's tapered
// silhouette. Because generation is deterministic, the preview shows
// exactly what a commit with the same seed will produce.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/vector"

	"github.com/magmavr/icegen/core"
	"github.com/magmavr/icegen/icicle"
	"github.com/magmavr/icegen/math"
)

// Plane selects which world axes map to the image.
type Plane int

const (
	// PlaneXY projects onto the world X (right) / Y (up) plane.
	PlaneXY Plane = iota
	// PlaneZY projects onto the world Z (right) / Y (up) plane.
	PlaneZY
)

type Options struct {
	/** @brief Output image size in pixels. Zero selects 512. */
	Width  int
	Height int
	/** @brief Border kept free around the drawing, in pixels. */
	Margin int
	/** @brief The projection plane. */
	Plane Plane
}

var (
	backgroundColor = color.RGBA{R: 18, G: 24, B: 32, A: 255}
	iceColor        = color.RGBA{R: 205, G: 228, B: 246, A: 255}
)

/**
 * @brief Renders the given paths into a new image. Paths are fitted to
 * the image bounds preserving aspect ratio; world up is image up.
 */
func Render(paths []icicle.Path, opts Options) (*image.RGBA, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: nothing to preview", core.ErrInvalidParameter)
	}
	width := opts.Width
	if width == 0 {
		width = 512
	}
	height := opts.Height
	if height == 0 {
		height = 512
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: preview size %dx%d", core.ErrInvalidParameter, width, height)
	}
	margin := opts.Margin
	if margin == 0 {
		margin = 16
	}

	minX, minY, maxX, maxY := bounds(paths, opts.Plane)

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	scale := float32(width-2*margin) / spanX
	if s := float32(height-2*margin) / spanY; s < scale {
		scale = s
	}

	toImage := func(p math.Vec3, r float32) (float32, float32, float32) {
		x, y := project(p, opts.Plane)
		// Flip vertically: world up is image up.
		return float32(margin) + (x-minX)*scale,
			float32(height-margin) - (y-minY)*scale,
			r * scale
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	src := image.NewUniform(iceColor)
	for _, path := range paths {
		if len(path.Points) < 2 {
			continue
		}
		rast := vector.NewRasterizer(width, height)
		rast.DrawOp = draw.Over

		// Silhouette polygon: down the left flank, back up the right.
		n := len(path.Points)
		lx := make([]float32, n)
		ly := make([]float32, n)
		rx := make([]float32, n)
		ry := make([]float32, n)
		for i, pt := range path.Points {
			x, y, r := toImage(pt.Position, pt.Radius)
			if r < 0.5 {
				r = 0.5
			}
			lx[i], ly[i] = x-r, y
			rx[i], ry[i] = x+r, y
		}
		rast.MoveTo(lx[0], ly[0])
		for i := 1; i < n; i++ {
			rast.LineTo(lx[i], ly[i])
		}
		for i := n - 1; i >= 0; i-- {
			rast.LineTo(rx[i], ry[i])
		}
		rast.ClosePath()
		rast.Draw(img, img.Bounds(), src, image.Point{})
	}

	return img, nil
}

// SavePNG encodes the image to the named file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func project(p math.Vec3, plane Plane) (float32, float32) {
	if plane == PlaneZY {
		return p.Z, p.Y
	}
	return p.X, p.Y
}

func bounds(paths []icicle.Path, plane Plane) (minX, minY, maxX, maxY float32) {
	first := true
	for _, path := range paths {
		for _, pt := range path.Points {
			x, y := project(pt.Position, plane)
			r := pt.Radius
			if first {
				minX, maxX = x-r, x+r
				minY, maxY = y-r, y+r
				first = false
				continue
			}
			if x-r < minX {
				minX = x - r
			}
			if x+r > maxX {
				maxX = x + r
			}
			if y-r < minY {
				minY = y - r
			}
			if y+r > maxY {
				maxY = y + r
			}
		}
	}
	return minX, minY, maxX, maxY
}
