// Package layout splits the terminal into panel rectangles.
//
// Split divides one axis by constraints: Length claims a fixed number of
// cells, Min claims at least that many and then shares the remainder like
// Fill, and Fill shares the remainder by weight. Rounding leftovers go to
// the last flexible item so the parts always cover the whole area.
package layout

// Rect is an area in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether cell (x, y) lies in r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Direction is the axis Split divides.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// Constraint sizes one part of a split.
type Constraint interface{ constraint() }

// Length is a fixed size.
type Length int

// Min is a lower bound that also takes a weight-1 share of the remainder.
type Min int

// Fill takes a share of the remainder proportional to its weight. Weights
// below 1 count as 1.
type Fill int

func (Length) constraint() {}
func (Min) constraint()    {}
func (Fill) constraint()   {}

// Split divides area along dir.
func Split(area Rect, dir Direction, cs ...Constraint) []Rect {
	total := area.Width
	if dir == Vertical {
		total = area.Height
	}
	sizes := solve(max(total, 0), cs)

	out := make([]Rect, len(cs))
	pos := 0
	for i, n := range sizes {
		if dir == Horizontal {
			out[i] = Rect{X: area.X + pos, Y: area.Y, Width: n, Height: area.Height}
		} else {
			out[i] = Rect{X: area.X, Y: area.Y + pos, Width: area.Width, Height: n}
		}
		pos += n
	}
	return out
}

func solve(total int, cs []Constraint) []int {
	sizes := make([]int, len(cs))
	remaining := total
	weights := 0
	lastFlex := -1

	for i, c := range cs {
		switch c := c.(type) {
		case Length:
			sizes[i] = min(max(int(c), 0), remaining)
			remaining -= sizes[i]
		case Min:
			sizes[i] = min(max(int(c), 0), remaining)
			remaining -= sizes[i]
			weights++
			lastFlex = i
		case Fill:
			weights += max(int(c), 1)
			lastFlex = i
		}
	}
	if weights == 0 || remaining <= 0 {
		return sizes
	}

	share := remaining
	for i, c := range cs {
		var w int
		switch c := c.(type) {
		case Min:
			w = 1
		case Fill:
			w = max(int(c), 1)
		default:
			continue
		}
		n := share * w / weights
		if i == lastFlex {
			n = remaining
		}
		sizes[i] += n
		remaining -= n
	}
	return sizes
}

// Cell names one panel in a grid row and its width weight.
type Cell struct {
	ID     string
	Weight int
}

// Row is one grid row and its height weight.
type Row struct {
	Weight int
	Cells  []Cell
}

// Grid places every cell of rows in area and returns the rectangles by ID.
func Grid(area Rect, rows []Row) map[string]Rect {
	out := make(map[string]Rect)
	rc := make([]Constraint, len(rows))
	for i, r := range rows {
		rc[i] = Fill(r.Weight)
	}
	for i, rowRect := range Split(area, Vertical, rc...) {
		cc := make([]Constraint, len(rows[i].Cells))
		for j, c := range rows[i].Cells {
			cc[j] = Fill(c.Weight)
		}
		for j, r := range Split(rowRect, Horizontal, cc...) {
			out[rows[i].Cells[j].ID] = r
		}
	}
	return out
}
