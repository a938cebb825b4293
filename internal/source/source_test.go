package source_test

import (
	"testing"

	"github.com/sergeych/lyng/internal/source"
)

func TestNewAssignsDistinctIDs(t *testing.T) {
	a := source.New("a.sl", "val x = 1")
	b := source.New("b.sl", "val y = 2")
	if a.ID() == b.ID() {
		t.Fatalf("two distinct sources should get distinct IDs")
	}
	if a.ID() != a.ID() {
		t.Fatalf("ID() should be stable across calls")
	}
}

func TestNilSourceIDIsNilUUID(t *testing.T) {
	var s *source.Source
	if s.ID().String() != "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("a nil *Source should report the nil UUID, got %s", s.ID())
	}
}

func TestPosStringFormatsNameLineColumn(t *testing.T) {
	src := source.New("main.sl", "x")
	p := source.Pos{Source: src, Line: 3, Column: 7}
	if got, want := p.String(), "main.sl:3:7"; got != want {
		t.Fatalf("Pos.String() = %q, want %q", got, want)
	}
}

func TestPosStringWithoutSourceUsesPlaceholder(t *testing.T) {
	p := source.Pos{Line: 1, Column: 1}
	if got := p.String(); got != "<unknown>:1:1" {
		t.Fatalf("Pos.String() without a Source = %q, want <unknown>:1:1", got)
	}
}

func TestSourceRetainsNameAndText(t *testing.T) {
	s := source.New("file.sl", "val x = 1\n")
	if s.Name != "file.sl" {
		t.Fatalf("Name = %q, want file.sl", s.Name)
	}
	if s.Text != "val x = 1\n" {
		t.Fatalf("Text mismatch: %q", s.Text)
	}
}
