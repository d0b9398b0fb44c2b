// Package imaging decodes previews and render results into display-ready
// frames.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"time"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const DefaultDelay = 100 * time.Millisecond

// Frame is one display-ready image, already fitted to its box.
type Frame struct {
	Image image.Image
	PNG   []byte
	Delay time.Duration
}

// Media is either *Static or *Animated.
type Media interface {
	Frames() []Frame
	media()
}

type Static struct {
	Frame Frame
}

type Animated struct {
	Items []Frame
}

func (s *Static) Frames() []Frame   { return []Frame{s.Frame} }
func (a *Animated) Frames() []Frame { return a.Items }
func (*Static) media()              {}
func (*Animated) media()            {}

// DecodeError means the bytes could not be turned into frames.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return "decode image: " + e.Err.Error()
	}
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode turns data into Media whose frames fit inside a box×box square.
// GIFs with more than one frame become *Animated; everything else is *Static.
func Decode(data []byte, box int) (Media, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}
	if format == "gif" {
		frames, err := decodeGIFFrames(data, box)
		if err != nil {
			return nil, format, &DecodeError{Err: err}
		}
		if len(frames) == 1 {
			return &Static{Frame: frames[0]}, format, nil
		}
		return &Animated{Items: frames}, format, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, &DecodeError{Err: err}
	}
	frame, err := newFrame(Fit(img, box), 0)
	if err != nil {
		return nil, format, &DecodeError{Err: err}
	}
	return &Static{Frame: frame}, format, nil
}

func decodeGIFFrames(data []byte, box int) ([]Frame, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("gif has no frames")
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)
	prev := image.NewRGBA(bounds)
	frames := make([]Frame, 0, len(g.Image))

	for i, frame := range g.Image {
		disposal := gif.DisposalNone
		if i < len(g.Disposal) {
			disposal = int(g.Disposal[i])
		}
		if disposal == gif.DisposalPrevious {
			copy(prev.Pix, canvas.Pix)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		delay := time.Duration(0)
		if i < len(g.Delay) {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		f, err := newFrame(Fit(canvas, box), delay)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), &image.Uniform{C: color.Transparent}, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, prev.Pix)
		}
	}
	return frames, nil
}

func newFrame(img image.Image, delay time.Duration) (Frame, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	pngData, err := encodePNG(img)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Image: img, PNG: pngData, Delay: delay}, nil
}

// Fit scales img down to fit a box×box square, keeping the aspect ratio. It
// never upscales and always returns a fresh image.
func Fit(img image.Image, box int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if box > 0 && w > 0 && h > 0 && (w > box || h > box) {
		scale := minFloat(float64(box)/float64(w), float64(box)/float64(h))
		tw := maxInt(1, int(float64(w)*scale+0.5))
		th := maxInt(1, int(float64(h)*scale+0.5))
		dst := image.NewRGBA(image.Rect(0, 0, tw, th))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		return dst
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
