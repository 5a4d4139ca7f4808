package compositor

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Buffer represents a rectangular pixel buffer with interleaved RGBA
// 32-bit float channels in [0, 1], row by row. Length of the data slice
// is always width*height*4.
//
// A Buffer wrapped in an Image must be treated as immutable: transform
// composition produces new Image metadata sharing the same buffer, and
// concurrent readers rely on the pixels never changing. Use Clone when a
// mutable copy is needed.
type Buffer struct {
	width  int
	height int
	data   []float32
}

// NewBuffer creates a new buffer with the given dimensions, filled with
// transparent black.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		data:   make([]float32, width*height*4),
	}
}

// Width returns the width of the buffer.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the height of the buffer.
func (b *Buffer) Height() int {
	return b.height
}

// Data returns the raw pixel data (interleaved RGBA float32).
func (b *Buffer) Data() []float32 {
	return b.data
}

// SetPixel sets the color of a single pixel.
func (b *Buffer) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	i := (y*b.width + x) * 4
	b.data[i+0] = float32(c.R)
	b.data[i+1] = float32(c.G)
	b.data[i+2] = float32(c.B)
	b.data[i+3] = float32(c.A)
}

// GetPixel returns the color of a single pixel.
func (b *Buffer) GetPixel(x, y int) RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Transparent
	}
	i := (y*b.width + x) * 4
	return RGBA{
		R: float64(b.data[i+0]),
		G: float64(b.data[i+1]),
		B: float64(b.data[i+2]),
		A: float64(b.data[i+3]),
	}
}

// Fill sets every pixel to the given color.
func (b *Buffer) Fill(c RGBA) {
	r := float32(c.R)
	g := float32(c.G)
	bl := float32(c.B)
	a := float32(c.A)

	for i := 0; i < len(b.data); i += 4 {
		b.data[i+0] = r
		b.data[i+1] = g
		b.data[i+2] = bl
		b.data[i+3] = a
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		width:  b.width,
		height: b.height,
		data:   make([]float32, len(b.data)),
	}
	copy(out.data, b.data)
	return out
}

// ToImage converts the buffer to an 8-bit image.NRGBA.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i := 0; i < len(b.data); i++ {
		img.Pix[i] = uint8(clamp255(float64(b.data[i]) * 255))
	}
	return img
}

// FromImage creates a buffer from an image.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	buf := NewBuffer(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			buf.SetPixel(x, y, FromColor(c))
		}
	}

	return buf
}

// SavePNG saves the buffer to a PNG file.
func (b *Buffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, b.ToImage())
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	return b.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return color.NRGBAModel
}
