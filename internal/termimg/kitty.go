package termimg

import (
	"bufio"
	"encoding/base64"
	"fmt"
)

const kittyChunk = 4096

func sendKitty(out *bufio.Writer, pl Placement, pngData []byte) error {
	if len(pngData) == 0 {
		return fmt.Errorf("kitty: empty frame")
	}
	payload := base64.StdEncoding.EncodeToString(pngData)
	_, _ = fmt.Fprint(out, "\x1b7")
	for first := true; len(payload) > 0; first = false {
		n := len(payload)
		if n > kittyChunk {
			n = kittyChunk
		}
		chunk := payload[:n]
		payload = payload[n:]
		more := 0
		if len(payload) > 0 {
			more = 1
		}
		if first {
			_, _ = fmt.Fprintf(out, "\x1b_Ga=T,f=100,t=d,i=%d,c=%d,r=%d,C=1,q=2,m=%d;%s\x1b\\", pl.ID, pl.Cols, pl.Rows, more, chunk)
		} else {
			_, _ = fmt.Fprintf(out, "\x1b_Gm=%d;%s\x1b\\", more, chunk)
		}
	}
	_, _ = fmt.Fprint(out, "\x1b8")
	return nil
}
