//go:build !unix

package terminal

import "golang.org/x/term"

func querySize(fd uintptr) (Size, bool) {
	w, h, err := term.GetSize(int(fd))
	if err != nil || w <= 0 || h <= 0 {
		return Size{}, false
	}
	return Size{Cols: w, Rows: h}, true
}
