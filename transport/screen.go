package transport

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rowr111/easyblink/pixel"
)

// Screen renders frames as a row of truecolor blocks on a terminal, for
// developing patterns without hardware attached.
type Screen struct {
	w io.Writer
}

// NewScreen writes frames to w, or to stdout when w is nil.
func NewScreen(w io.Writer) *Screen {
	if w == nil {
		w = os.Stdout
	}
	return &Screen{w: w}
}

func (s *Screen) WriteFrame(pixels []pixel.Pixel) error {
	var b strings.Builder
	for _, p := range pixels {
		fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm█",
			scale(p.R, p.Brightness), scale(p.G, p.Brightness), scale(p.B, p.Brightness))
	}
	b.WriteString("\x1b[0m\r")
	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

func (s *Screen) Close() error {
	_, err := io.WriteString(s.w, "\x1b[0m\n")
	return err
}
