// Package image turns decoded avatars into strings a terminal can draw:
// halfblock cells with 24-bit colour, or an inline image escape for Kitty,
// iTerm2 and Sixel capable emulators.
package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/blacktop/go-termimg"

	"gitlab.com/tinyland/lab/dayboard/pkg/terminal"
)

// ErrDisabled is returned when the protocol is ProtocolNone.
var ErrDisabled = errors.New("image rendering disabled")

// Renderer draws images into cell boxes with one protocol and caches the
// result per source key.
type Renderer struct {
	protocol terminal.Protocol
	cellW    int
	cellH    int
	cache    *Cache
}

// NewRenderer returns a Renderer. Cell geometry is only used by the inline
// protocols; zero values select DefaultCellW and DefaultCellH.
func NewRenderer(p terminal.Protocol, cellW, cellH, cacheMB int) *Renderer {
	return &Renderer{protocol: p, cellW: cellW, cellH: cellH, cache: NewCache(cacheMB)}
}

// Protocol returns the active protocol.
func (r *Renderer) Protocol() terminal.Protocol { return r.protocol }

// Cache exposes the rendering cache.
func (r *Renderer) Cache() *Cache { return r.cache }

// Render draws img as a square tile of cols x rows cells. source names the
// image for caching; an empty source disables the cache.
func (r *Renderer) Render(source string, img image.Image, cols, rows int) (string, error) {
	if img == nil {
		return "", errors.New("render: nil image")
	}
	if r.protocol == terminal.ProtocolNone {
		return "", ErrDisabled
	}

	key := Key{Source: source, Protocol: r.protocol.String(), Cols: cols, Rows: rows}
	if source != "" {
		if out, ok := r.cache.Get(key); ok {
			return out, nil
		}
	}

	var (
		out string
		err error
	)
	switch r.protocol {
	case terminal.ProtocolKitty:
		out, err = r.inline(img, termimg.Kitty, cols, rows)
	case terminal.ProtocolITerm2:
		out, err = r.inline(img, termimg.ITerm2, cols, rows)
	case terminal.ProtocolSixel:
		out, err = r.inline(img, termimg.Sixel, cols, rows)
	default:
		w, h := HalfblockPixels(cols, rows)
		out = Halfblocks(squareOrFit(img, w, h))
	}
	if err != nil {
		return "", fmt.Errorf("render %s: %w", r.protocol, err)
	}

	if source != "" {
		r.cache.Put(key, out)
	}
	return out, nil
}

func (r *Renderer) inline(img image.Image, p termimg.Protocol, cols, rows int) (string, error) {
	w, h := CellPixels(cols, rows, r.cellW, r.cellH)
	ti := termimg.New(FitPixels(img, w, h))
	if ti == nil {
		return "", errors.New("go-termimg rejected image")
	}
	return ti.Protocol(p).Size(cols, rows).Scale(termimg.ScaleFit).Render()
}

// squareOrFit crops to a square when the box is square in pixels and
// otherwise fits within the box.
func squareOrFit(img image.Image, w, h int) image.Image {
	if w == h {
		return Square(img, w)
	}
	return FitPixels(img, w, h)
}

// Halfblocks renders img with U+2580: the top pixel of each pair is the
// foreground colour and the bottom one the background. Transparent pixels
// use the terminal default. Rows end with a reset and are joined by "\n".
func Halfblocks(img image.Image) string {
	b := img.Bounds()
	if b.Empty() {
		return ""
	}

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		var last string
		for x := b.Min.X; x < b.Max.X; x++ {
			top := nrgba(img.At(x, y))
			bot := color.NRGBA{}
			if y+1 < b.Max.Y {
				bot = nrgba(img.At(x, y+1))
			}
			sgr, glyph := halfblockCell(top, bot)
			if sgr != last {
				sb.WriteString(sgr)
				last = sgr
			}
			sb.WriteString(glyph)
		}
		sb.WriteString("\x1b[0m")
	}
	return sb.String()
}

func halfblockCell(top, bot color.NRGBA) (sgr, glyph string) {
	switch {
	case top.A == 0 && bot.A == 0:
		return "\x1b[0m", " "
	case top.A == 0:
		return fmt.Sprintf("\x1b[0;38;2;%d;%d;%dm", bot.R, bot.G, bot.B), "▄"
	case bot.A == 0:
		return fmt.Sprintf("\x1b[0;38;2;%d;%d;%dm", top.R, top.G, top.B), "▀"
	default:
		return fmt.Sprintf("\x1b[38;2;%d;%d;%d;48;2;%d;%d;%dm",
			top.R, top.G, top.B, bot.R, bot.G, bot.B), "▀"
	}
}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
