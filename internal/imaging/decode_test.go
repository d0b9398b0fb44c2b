package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/steipete/memegrep/internal/testutil"
)

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestDecodeAnimatedGIF(t *testing.T) {
	media, format, err := Decode(testutil.MakeTestGIF(), 300)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if format != "gif" {
		t.Fatalf("expected gif, got %q", format)
	}
	anim, ok := media.(*Animated)
	if !ok {
		t.Fatalf("expected *Animated, got %T", media)
	}
	if len(anim.Items) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(anim.Items))
	}
	if anim.Items[0].Delay != 50*time.Millisecond || anim.Items[1].Delay != 70*time.Millisecond {
		t.Fatalf("unexpected delays: %v %v", anim.Items[0].Delay, anim.Items[1].Delay)
	}
	if !isWhite(anim.Items[0].Image.At(0, 0)) || !isWhite(anim.Items[1].Image.At(1, 1)) {
		t.Fatalf("frames not composited as expected")
	}
	if isWhite(anim.Items[1].Image.At(0, 0)) {
		t.Fatalf("background disposal not applied")
	}
	for i, f := range anim.Items {
		if len(f.PNG) == 0 {
			t.Fatalf("frame %d missing png", i)
		}
	}
}

func TestDecodeDefaultDelay(t *testing.T) {
	media, _, err := Decode(testutil.MakeGIF(4, 4, []int{0, 0, 3}), 300)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	frames := media.Frames()
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if frames[0].Delay != DefaultDelay || frames[1].Delay != DefaultDelay || frames[2].Delay != 30*time.Millisecond {
		t.Fatalf("unexpected delays %v %v %v", frames[0].Delay, frames[1].Delay, frames[2].Delay)
	}
}

func TestDecodeSingleFrameGIFIsStatic(t *testing.T) {
	media, _, err := Decode(testutil.MakeGIF(3, 3, []int{10}), 300)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if _, ok := media.(*Static); !ok {
		t.Fatalf("expected *Static, got %T", media)
	}
}

func TestDecodeStaticFitsBox(t *testing.T) {
	media, format, err := Decode(testutil.MakePNG(400, 100), 200)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if format != "png" {
		t.Fatalf("expected png, got %q", format)
	}
	st, ok := media.(*Static)
	if !ok {
		t.Fatalf("expected *Static, got %T", media)
	}
	b := st.Frame.Image.Bounds()
	if b.Dx() != 200 || b.Dy() != 50 {
		t.Fatalf("unexpected size %dx%d", b.Dx(), b.Dy())
	}

	media, format, err = Decode(testutil.MakeJPEG(10, 20), 200)
	if err != nil || format != "jpeg" {
		t.Fatalf("jpeg decode: %v %q", err, format)
	}
	if b := media.Frames()[0].Image.Bounds(); b.Dx() != 10 || b.Dy() != 20 {
		t.Fatalf("small images must not be upscaled, got %v", b)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode([]byte("nope"), 300)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestFitKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 90, 300))
	got := Fit(src, 150)
	if got.Bounds().Dx() != 45 || got.Bounds().Dy() != 150 {
		t.Fatalf("unexpected fit %v", got.Bounds())
	}
	same := Fit(src, 0)
	if same.Bounds() != src.Bounds() || same == src {
		t.Fatalf("expected a fresh copy of the same size")
	}
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"gif":  ".gif",
		"GIF":  ".gif",
		"jpeg": ".jpg",
		"png":  ".png",
		"webp": ".webp",
		"bmp":  ".png",
		"":     ".png",
	}
	for format, want := range cases {
		if got := Extension(format); got != want {
			t.Fatalf("Extension(%q)=%q want %q", format, got, want)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	if got := DetectFormat(testutil.MakeTestGIF()); got != "gif" {
		t.Fatalf("expected gif, got %q", got)
	}
	if got := DetectFormat(testutil.MakePNG(1, 1)); got != "png" {
		t.Fatalf("expected png, got %q", got)
	}
	if got := DetectFormat([]byte("GIF")); got != "" {
		t.Fatalf("expected empty format, got %q", got)
	}
}
