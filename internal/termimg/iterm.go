package termimg

import (
	"bufio"
	"encoding/base64"
	"fmt"
)

func sendITerm(out *bufio.Writer, pl Placement, pngData []byte) error {
	if len(pngData) == 0 {
		return fmt.Errorf("iterm: empty frame")
	}
	_, _ = fmt.Fprint(out, "\x1b7")
	_, _ = fmt.Fprintf(out, "\x1b]1337;File=inline=1;size=%d;width=%d;height=%d;preserveAspectRatio=1:", len(pngData), pl.Cols, pl.Rows)
	enc := base64.NewEncoder(base64.StdEncoding, out)
	if _, err := enc.Write(pngData); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprint(out, "\x07")
	_, _ = fmt.Fprint(out, "\x1b8")
	return nil
}
