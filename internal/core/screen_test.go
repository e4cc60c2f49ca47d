package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)
	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, want 12x4", s.Width(), s.Height())
	}
	want := strings.Repeat(strings.Repeat(" ", 12)+"\n", 3) + strings.Repeat(" ", 12)
	if got := s.String(); got != want {
		t.Errorf("new screen not blank:\n%q", got)
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(5, 3)
	points := [][2]int{{-1, 0}, {5, 0}, {0, -1}, {0, 3}, {100, 100}}
	for _, p := range points {
		s.SetColored(p[0], p[1], 'X', ColorRed)
		if c := s.GetCell(p[0], p[1]); c.Rune != ' ' || c.Color != ColorDefault {
			t.Errorf("GetCell(%d, %d) = %+v, want blank", p[0], p[1], c)
		}
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Error("out-of-bounds write leaked into the buffer")
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name string
		x    int
		text string
		want string
	}{
		{"inside", 1, "ski", " ski    "},
		{"clipped right", 6, "slope", "      sl"},
		{"clipped left", -2, "gate", "te      "},
		{"unicode", 0, "♣☃⌂", "♣☃⌂     "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(8, 1)
			s.DrawText(tt.x, 0, tt.text)
			if got := s.Row(0); got != tt.want {
				t.Errorf("Row(0) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "GO")
	if got := s.Row(0); got != "    GO     " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(6, 6)
	s.DrawTextColored(0, 0, "ab", ColorGold)
	s.DrawVLine(4, 1, 3, '┃', ColorBlue)

	if c := s.GetCell(1, 0); c.Rune != 'b' || c.Color != ColorGold {
		t.Errorf("text cell = %+v", c)
	}
	for y := 1; y <= 3; y++ {
		if c := s.GetCell(4, y); c.Rune != '┃' || c.Color != ColorBlue {
			t.Errorf("pole cell y=%d = %+v", y, c)
		}
	}
	if c := s.GetCell(4, 4); c.Rune != ' ' {
		t.Errorf("pole overran its length: %+v", c)
	}

	s.Set(0, 0, 'z')
	if c := s.GetCell(0, 0); c.Color != ColorDefault {
		t.Errorf("Set should reset color, got %v", c.Color)
	}

	s.Clear()
	if c := s.GetCell(1, 0); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("Clear left %+v", c)
	}
}

func TestScreenBoxAndRect(t *testing.T) {
	s := NewScreen(6, 4)
	s.Fill('.')
	s.DrawRect(NewRect(1, 1, 4, 2), ' ')
	s.DrawBox(NewRect(0, 0, 6, 4))

	want := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColored(0, 0, "abcd", ColorRed)
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	if got := s.String(); got != "ab\nef\n  " {
		t.Errorf("after shrink: %q", got)
	}
	if c := s.GetCell(1, 0); c.Color != ColorRed {
		t.Errorf("color lost on resize: %+v", c)
	}

	s.Resize(2, 3)
	if got := s.Row(0); got != "ab" {
		t.Errorf("same-size resize changed content: %q", got)
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, want blank row", got)
	}
}
