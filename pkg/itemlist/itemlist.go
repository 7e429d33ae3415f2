// Package itemlist implements a prepend-only list of strings.
//
// A List is never mutated in place. Prepend builds a new List with the
// value at index 0 followed by every prior item in order, so a render that
// holds the old List keeps seeing the old contents.
package itemlist

// Seeds and prepend values for the built-in lists.
var (
	FruitSeed  = []string{"apple", "banana", "grapsh"}
	LetterSeed = []string{"a", "b", "c"}
)

const (
	FruitPrepend  = "mango"
	LetterPrepend = "d"
)

// List is an ordered, prepend-only sequence of strings.
type List struct {
	items []string
}

// New returns a List holding a copy of seed.
func New(seed ...string) *List {
	items := make([]string, len(seed))
	copy(items, seed)
	return &List{items: items}
}

// Prepend returns a new List with v in front of the receiver's items.
// The receiver is left unchanged.
func (l *List) Prepend(v string) *List {
	items := make([]string, 0, len(l.items)+1)
	items = append(items, v)
	items = append(items, l.items...)
	return &List{items: items}
}

// Items returns a copy of the list contents.
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// At returns the item at index i.
func (l *List) At(i int) string { return l.items[i] }
