package atlas

import (
	"errors"
	"testing"

	"github.com/Faultbox/nfstex/pkg/formats"
	"github.com/Faultbox/nfstex/pkg/texture"
)

func frdRecord(t *testing.T, id uint32, w, h uint16) *texture.Record {
	t.Helper()
	rec, err := texture.NewRecord(texture.NFS3, id, []byte{1}, 0, 0,
		texture.FRDPayload(formats.FRDTextureBlock{Width: w, Height: h, QFSIndex: uint16(id)}))
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	return rec
}

func TestPack_BoundsRelativeToLargestTexture(t *testing.T) {
	records := []*texture.Record{
		frdRecord(t, 9, 64, 32),
		frdRecord(t, 2, 256, 128),
		frdRecord(t, 5, 128, 128),
	}

	placements, err := Pack(records, Options{MaxLayers: 16})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if placements.Len() != 3 {
		t.Fatalf("expected 3 placements, got %d", placements.Len())
	}

	tests := []struct {
		id    uint32
		layer uint32
		maxU  float32
		maxV  float32
	}{
		{2, 0, 1, 1},
		{5, 1, 0.5, 1},
		{9, 2, 0.25, 0.25},
	}

	for _, tt := range tests {
		pl, ok := placements.Get(tt.id)
		if !ok {
			t.Fatalf("texture %d not placed", tt.id)
		}
		if pl.Layer != tt.layer {
			t.Errorf("texture %d: expected layer %d, got %d", tt.id, tt.layer, pl.Layer)
		}
		if pl.Bounds.MaxU != tt.maxU || pl.Bounds.MaxV != tt.maxV {
			t.Errorf("texture %d: expected max (%v, %v), got (%v, %v)",
				tt.id, tt.maxU, tt.maxV, pl.Bounds.MaxU, pl.Bounds.MaxV)
		}
		if pl.Bounds.MinU != 0 || pl.Bounds.MinV != 0 {
			t.Errorf("texture %d: expected zero min bounds, got %+v", tt.id, pl.Bounds)
		}
	}
}

func TestPack_UnsizedTextureKeepsZeroBounds(t *testing.T) {
	unsized, err := texture.NewRecord(texture.NFS2, 1, []byte{1}, 0, 0,
		texture.TRKPayload(formats.TRKTextureBlock{TexNumber: 1}))
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}

	placements, err := Pack([]*texture.Record{unsized, frdRecord(t, 2, 64, 64)}, Options{})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	pl, ok := placements.Get(1)
	if !ok {
		t.Fatal("expected unsized texture to still get a layer")
	}
	if pl.Bounds != (texture.UVBounds{}) {
		t.Errorf("expected zero bounds, got %+v", pl.Bounds)
	}
}

func TestPack_LayerLimit(t *testing.T) {
	records := []*texture.Record{frdRecord(t, 1, 8, 8), frdRecord(t, 2, 8, 8)}

	if _, err := Pack(records, Options{MaxLayers: 1}); !errors.Is(err, ErrTooManyLayers) {
		t.Errorf("expected ErrTooManyLayers, got %v", err)
	}
}

func TestPack_DuplicateIDs(t *testing.T) {
	records := []*texture.Record{frdRecord(t, 4, 8, 8), frdRecord(t, 4, 16, 16)}

	if _, err := Pack(records, Options{}); !errors.Is(err, ErrAlreadyPlaced) {
		t.Errorf("expected ErrAlreadyPlaced, got %v", err)
	}
}

func TestPlacements_WriteOnce(t *testing.T) {
	p := NewPlacements()
	pl := texture.Placement{Layer: 3, Bounds: texture.UVBounds{MaxU: 1, MaxV: 0.5}}

	if err := p.Set(10, pl); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := p.Set(10, texture.Placement{}); !errors.Is(err, ErrAlreadyPlaced) {
		t.Errorf("expected ErrAlreadyPlaced, got %v", err)
	}

	got, ok := p.Get(10)
	if !ok || got != pl {
		t.Errorf("expected %+v, got %+v (ok=%v)", pl, got, ok)
	}

	if _, ok := p.Get(11); ok {
		t.Error("expected unplaced texture to report false")
	}
}

func TestPlacements_RejectsInvalidBounds(t *testing.T) {
	p := NewPlacements()
	bad := texture.Placement{Bounds: texture.UVBounds{MinU: 1, MaxU: 0.5, MaxV: 1}}

	if err := p.Set(1, bad); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("expected ErrInvalidBounds, got %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("expected nothing placed, got %d", p.Len())
	}
}
