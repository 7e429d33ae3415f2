package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func widths(rs []Rect) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.Width
	}
	return out
}

func TestSplitHorizontal(t *testing.T) {
	tests := []struct {
		name  string
		total int
		cs    []Constraint
		want  []int
	}{
		{"equal fill", 90, []Constraint{Fill(1), Fill(1), Fill(1)}, []int{30, 30, 30}},
		{"weighted", 100, []Constraint{Fill(1), Fill(3)}, []int{25, 75}},
		{"remainder to last", 10, []Constraint{Fill(1), Fill(1), Fill(1)}, []int{3, 3, 4}},
		{"length and fill", 50, []Constraint{Length(10), Fill(1)}, []int{10, 40}},
		{"min grows", 30, []Constraint{Min(10), Length(5)}, []int{25, 5}},
		{"length overflow", 8, []Constraint{Length(5), Length(5)}, []int{5, 3}},
		{"zero weight", 10, []Constraint{Fill(0), Fill(1)}, []int{5, 5}},
		{"no space", 0, []Constraint{Fill(1), Length(3)}, []int{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := widths(Split(Rect{Width: tt.total, Height: 1}, Horizontal, tt.cs...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("widths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitVerticalPositions(t *testing.T) {
	rs := Split(Rect{X: 2, Y: 1, Width: 10, Height: 20}, Vertical, Length(1), Fill(1), Length(1))
	want := []Rect{
		{X: 2, Y: 1, Width: 10, Height: 1},
		{X: 2, Y: 2, Width: 10, Height: 18},
		{X: 2, Y: 20, Width: 10, Height: 1},
	}
	if diff := cmp.Diff(want, rs); diff != "" {
		t.Errorf("Split mismatch (-want +got):\n%s", diff)
	}
}

func TestGrid(t *testing.T) {
	rows := []Row{
		{Weight: 2, Cells: []Cell{{ID: "users", Weight: 1}}},
		{Weight: 1, Cells: []Cell{{ID: "clock", Weight: 1}, {ID: "fruits", Weight: 1}}},
	}
	got := Grid(Rect{Width: 80, Height: 30}, rows)
	want := map[string]Rect{
		"users":  {X: 0, Y: 0, Width: 80, Height: 20},
		"clock":  {X: 0, Y: 20, Width: 40, Height: 10},
		"fruits": {X: 40, Y: 20, Width: 40, Height: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Grid mismatch (-want +got):\n%s", diff)
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 5, Y: 5, Width: 10, Height: 2}
	if !r.Contains(5, 5) || !r.Contains(14, 6) {
		t.Error("Contains missed an inner cell")
	}
	if r.Contains(15, 5) || r.Contains(5, 7) {
		t.Error("Contains matched an outer cell")
	}
	if r.Empty() || !(Rect{Width: 3}).Empty() {
		t.Error("Empty is wrong")
	}
}
