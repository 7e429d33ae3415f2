package terminal

import (
	"os"
	"strconv"
)

// Size is the terminal geometry. Pixel fields are zero when unknown.
type Size struct {
	Cols  int
	Rows  int
	CellW int
	CellH int
}

const (
	fallbackCols = 80
	fallbackRows = 24
)

// SizeOf queries fd, then COLUMNS and LINES, then falls back to 80x24.
func SizeOf(fd uintptr) Size {
	if s, ok := querySize(fd); ok {
		return s
	}
	return Size{
		Cols: envInt("COLUMNS", fallbackCols),
		Rows: envInt("LINES", fallbackRows),
	}
}

func envInt(name string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
