// Package testutil builds small images for tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
)

// MakeTestGIF returns a 2x2 two-frame GIF: frame 0 lights (0,0) for 50ms,
// frame 1 lights (1,1) for 70ms.
func MakeTestGIF() []byte {
	return MakeGIF(2, 2, []int{5, 7})
}

// MakeGIF returns a w×h GIF with one frame per delay (in 1/100s). Frame i
// lights pixel (i%w, i%h).
func MakeGIF(w, h int, delays []int) []byte {
	palette := color.Palette{color.Black, color.White}
	g := &gif.GIF{Config: image.Config{Width: w, Height: h, ColorModel: palette}}
	for i, d := range delays {
		img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
		img.SetColorIndex(i%w, i%h, 1)
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, d)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func MakePNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func MakeJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
