package charclass

import (
	"reflect"
	"testing"

	"github.com/coregx/regexc/internal/automaton"
)

func TestMergeRangesOverlapping(t *testing.T) {
	in := []automaton.Range{{Lo: 'a', Hi: 'f'}, {Lo: 'd', Hi: 'z'}}
	got := MergeRanges(in)
	want := []automaton.Range{{Lo: 'a', Hi: 'z'}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestMergeRangesTouching(t *testing.T) {
	in := []automaton.Range{{Lo: 'a', Hi: 'c'}, {Lo: 'd', Hi: 'f'}}
	got := MergeRanges(in)
	want := []automaton.Range{{Lo: 'a', Hi: 'f'}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected touching ranges to merge: got %v want %v", got, want)
	}
}

func TestMergeRangesDisjoint(t *testing.T) {
	in := []automaton.Range{{Lo: 'a', Hi: 'c'}, {Lo: 'x', Hi: 'z'}}
	got := MergeRanges(in)
	want := []automaton.Range{{Lo: 'a', Hi: 'c'}, {Lo: 'x', Hi: 'z'}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestMergeRangesUnordered(t *testing.T) {
	in := []automaton.Range{{Lo: 'x', Hi: 'z'}, {Lo: 'a', Hi: 'c'}}
	got := MergeRanges(in)
	want := []automaton.Range{{Lo: 'a', Hi: 'c'}, {Lo: 'x', Hi: 'z'}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected sorted output regardless of input order: got %v", got)
	}
}

func TestMergeRangesEmpty(t *testing.T) {
	if got := MergeRanges(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestComplementFullRange(t *testing.T) {
	got := Complement([]automaton.Range{{Lo: 0, Hi: MaxByte}})
	if len(got) != 0 {
		t.Fatalf("expected empty complement of full range, got %v", got)
	}
}

func TestComplementEmptyRange(t *testing.T) {
	got := Complement(nil)
	want := []automaton.Range{{Lo: 0, Hi: MaxByte}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestComplementMiddleGap(t *testing.T) {
	got := Complement([]automaton.Range{{Lo: 'b', Hi: 'y'}})
	want := []automaton.Range{{Lo: 0, Hi: 'b' - 1}, {Lo: 'y' + 1, Hi: MaxByte}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
