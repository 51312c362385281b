// Package texgen builds the surface images the demo samples from: a diffuse
// colour map, a height map for displacement and a tangent-space normal map.
// Images loaded from disk pass through the same package to be converted
// and resized before upload.
package texgen

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

// Checker palette for the generated diffuse map
var (
	CheckerLight = colornames.Burlywood
	CheckerDark  = colornames.Sienna
)

// Diffuse returns a size×size checkerboard with the given number of cells per side
func Diffuse(size, cells int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if cells <= 0 {
		cells = 1
	}
	cell := max(size/cells, 1)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := CheckerLight
			if (x/cell+y/cell)%2 == 1 {
				c = CheckerDark
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Height returns a tileable size×size height map in [0, 1] built from a few
// sine octaves. freq is the number of base periods across the image.
func Height(size int, freq float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	if size == 0 {
		return img
	}

	octaves := []struct{ f, a float64 }{
		{1, 0.5},
		{2, 0.25},
		{4, 0.125},
	}
	var total float64
	for _, o := range octaves {
		total += o.a
	}

	for y := 0; y < size; y++ {
		v := 2 * math.Pi * float64(y) / float64(size)
		for x := 0; x < size; x++ {
			u := 2 * math.Pi * float64(x) / float64(size)
			var h float64
			for _, o := range octaves {
				h += o.a * math.Sin(u*freq*o.f) * math.Cos(v*freq*o.f)
			}
			// [-total, total] -> [0, 1]
			h = (h/total + 1) / 2
			img.SetGray(x, y, color.Gray{Y: uint8(math.Round(h * 255))})
		}
	}
	return img
}

// NormalMap derives a tangent-space normal map from a height map using
// central differences with wrap-around. strength scales the slopes.
func NormalMap(height *image.Gray, strength float64) *image.RGBA {
	b := height.Bounds()
	w, h := b.Dx(), b.Dy()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	at := func(x, y int) float64 {
		x = (x%w + w) % w
		y = (y%h + h) % h
		return float64(height.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (at(x+1, y) - at(x-1, y)) * strength
			dy := (at(x, y+1) - at(x, y-1)) * strength
			nx, ny, nz := -dx, -dy, 1.0
			l := math.Sqrt(nx*nx + ny*ny + nz*nz)
			img.SetRGBA(x, y, color.RGBA{
				R: encodeUnit(nx / l),
				G: encodeUnit(ny / l),
				B: encodeUnit(nz / l),
				A: 255,
			})
		}
	}
	return img
}

// encodeUnit maps [-1, 1] to [0, 255]
func encodeUnit(v float64) uint8 {
	return uint8(math.Round((v + 1) / 2 * 255))
}

// ToRGBA converts img to a tightly packed RGBA image, scaling it down so
// neither side exceeds maxSize. A maxSize of zero disables scaling.
func ToRGBA(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := fitSize(b.Dx(), b.Dy(), maxSize)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// fitSize shrinks w×h to fit in maxSize×maxSize keeping the aspect ratio
func fitSize(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(h*maxSize/w, 1)
	}
	return max(w*maxSize/h, 1), maxSize
}
