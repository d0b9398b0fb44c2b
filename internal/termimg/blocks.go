package termimg

import (
	"bufio"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// drawBlocks paints two pixels per cell with "▀": foreground is the top
// pixel, background the bottom one.
func drawBlocks(out *bufio.Writer, pl Placement, img image.Image) {
	if img == nil {
		return
	}
	grid := image.NewRGBA(image.Rect(0, 0, pl.Cols, pl.Rows*2))
	draw.ApproxBiLinear.Scale(grid, grid.Bounds(), img, img.Bounds(), draw.Src, nil)

	_, _ = fmt.Fprint(out, "\x1b7")
	for r := 0; r < pl.Rows; r++ {
		moveTo(out, pl.Row+r, pl.Col)
		for c := 0; c < pl.Cols; c++ {
			top := grid.RGBAAt(c, 2*r)
			bottom := grid.RGBAAt(c, 2*r+1)
			_, _ = fmt.Fprintf(out, "\x1b[38;2;%sm\x1b[48;2;%sm▀", rgb(top), rgb(bottom))
		}
		_, _ = fmt.Fprint(out, "\x1b[0m")
	}
	_, _ = fmt.Fprint(out, "\x1b8")
}

// rgb flattens premultiplied c onto black.
func rgb(c color.RGBA) string {
	return fmt.Sprintf("%d;%d;%d", c.R, c.G, c.B)
}
