package itemlist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrependMango(t *testing.T) {
	l := New(FruitSeed...).Prepend(FruitPrepend)
	want := []string{"mango", "apple", "banana", "grapsh"}
	if diff := cmp.Diff(want, l.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrependTwice(t *testing.T) {
	l := New(LetterSeed...).Prepend(LetterPrepend).Prepend(LetterPrepend)
	want := []string{"d", "d", "a", "b", "c"}
	if diff := cmp.Diff(want, l.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrependKeepsSuffix(t *testing.T) {
	seed := []string{"x", "y", "z"}
	for k := 0; k <= 5; k++ {
		l := New(seed...)
		for i := 0; i < k; i++ {
			l = l.Prepend("v")
		}
		if l.Len() != len(seed)+k {
			t.Fatalf("k=%d: Len() = %d, want %d", k, l.Len(), len(seed)+k)
		}
		if diff := cmp.Diff(seed, l.Items()[k:]); diff != "" {
			t.Errorf("k=%d: suffix mismatch (-want +got):\n%s", k, diff)
		}
		for i := 0; i < k; i++ {
			if l.At(i) != "v" {
				t.Errorf("k=%d: At(%d) = %q, want v", k, i, l.At(i))
			}
		}
	}
}

func TestPrependLeavesOriginalUntouched(t *testing.T) {
	orig := New(FruitSeed...)
	_ = orig.Prepend(FruitPrepend)
	if diff := cmp.Diff(FruitSeed, orig.Items()); diff != "" {
		t.Errorf("original changed (-want +got):\n%s", diff)
	}
}

func TestNewCopiesSeed(t *testing.T) {
	seed := []string{"a", "b"}
	l := New(seed...)
	seed[0] = "changed"
	if l.At(0) != "a" {
		t.Errorf("seed mutation leaked into list: %q", l.At(0))
	}

	items := l.Items()
	items[1] = "changed"
	if l.At(1) != "b" {
		t.Errorf("Items() mutation leaked into list: %q", l.At(1))
	}
}

func TestEmptyList(t *testing.T) {
	l := New()
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	l = l.Prepend("only")
	if diff := cmp.Diff([]string{"only"}, l.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}
