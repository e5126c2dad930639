package texture

import "testing"

func TestDecodeFRDFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags uint32
		want  Orientation
	}{
		{"zero", 0, Orientation{}},
		{"quadrant 1", 1 << 2, Orientation{Quadrant: 1}},
		{"quadrant 3", 3 << 2, Orientation{Quadrant: 3}},
		{"horizontal flip", 0x10, Orientation{HFlip: true}},
		{"vertical flip", 0x20, Orientation{VFlip: true}},
		{"tile scale 4", 4 << 6, Orientation{TileScale: 4}},
		{"one sided", 0x8000, Orientation{OneSided: true}},
		{"ignores low bits", 0x3, Orientation{}},
		{"all fields", 0x8000 | 2<<6 | 0x30 | 2<<2, Orientation{Quadrant: 2, HFlip: true, VFlip: true, TileScale: 2, OneSided: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeFRDFlags(tt.flags); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestDecodeTRKFlags(t *testing.T) {
	if got := DecodeTRKFlags(1 << 11); got.Quadrant != 1 {
		t.Errorf("expected quadrant 1, got %d", got.Quadrant)
	}
	if got := DecodeTRKFlags(3 << 11); got.Quadrant != 3 {
		t.Errorf("expected quadrant 3, got %d", got.Quadrant)
	}
	// Bits outside 11-12 carry no orientation
	if got := DecodeTRKFlags(0x3ff | 1<<13); got != (Orientation{}) {
		t.Errorf("expected zero orientation, got %+v", got)
	}
}

func TestOrientation_Tiling(t *testing.T) {
	tests := []struct {
		scale  uint8
		u, v   int
		wantOK bool
	}{
		{0, 1, 1, true},
		{1, 2, 1, true},
		{2, 1, 2, true},
		{3, 4, 1, true},
		{4, 1, 4, true},
		{5, 1, 1, false},
		{7, 1, 1, false},
	}

	for _, tt := range tests {
		u, v, ok := Orientation{TileScale: tt.scale}.Tiling()
		if u != tt.u || v != tt.v || ok != tt.wantOK {
			t.Errorf("scale %d: expected %dx%d ok=%v, got %dx%d ok=%v", tt.scale, tt.u, tt.v, tt.wantOK, u, v, ok)
		}
	}
}
