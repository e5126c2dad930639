// Package atlas assigns track textures to layers of a shared texture array.
package atlas

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/nfstex/pkg/texture"
)

// Atlas errors.
var (
	ErrAlreadyPlaced = errors.New("texture already placed")
	ErrInvalidBounds = errors.New("invalid UV bounds")
	ErrTooManyLayers = errors.New("atlas layer limit exceeded")
)

// Placements maps texture ids to their atlas placement. Each id is placed at
// most once. A Placements returned by Pack is complete and may be read from
// any number of goroutines.
type Placements struct {
	byID map[uint32]texture.Placement
}

// NewPlacements returns an empty placement table.
func NewPlacements() *Placements {
	return &Placements{byID: make(map[uint32]texture.Placement)}
}

// Set records the placement of a texture.
func (p *Placements) Set(id uint32, pl texture.Placement) error {
	if !pl.Bounds.Valid() {
		return fmt.Errorf("%w: texture %d: %+v", ErrInvalidBounds, id, pl.Bounds)
	}
	if _, ok := p.byID[id]; ok {
		return fmt.Errorf("%w: texture %d", ErrAlreadyPlaced, id)
	}
	p.byID[id] = pl
	return nil
}

// Get returns the placement of a texture. Unplaced textures return the zero
// placement and false.
func (p *Placements) Get(id uint32) (texture.Placement, bool) {
	pl, ok := p.byID[id]
	return pl, ok
}

// Len returns the number of placed textures.
func (p *Placements) Len() int {
	return len(p.byID)
}

// Options controls packing.
type Options struct {
	MaxLayers int
}

// Pack places every record on its own layer, in id order. All layers share the
// size of the largest texture, so each record's bounds cover the top-left
// w/maxW by h/maxH of its layer. Records whose size cannot be resolved keep
// zero bounds and must not be rendered.
func Pack(records []*texture.Record, opts Options) (*Placements, error) {
	if opts.MaxLayers > 0 && len(records) > opts.MaxLayers {
		return nil, fmt.Errorf("%w: %d textures, %d layers", ErrTooManyLayers, len(records), opts.MaxLayers)
	}

	sorted := make([]*texture.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID() < sorted[j].ID()
	})

	var maxW, maxH uint32
	for _, rec := range sorted {
		w, h := texture.Dimensions(rec)
		maxW = max(maxW, w)
		maxH = max(maxH, h)
	}

	placements := NewPlacements()
	for layer, rec := range sorted {
		pl := texture.Placement{Layer: uint32(layer)}

		w, h := texture.Dimensions(rec)
		if w > 0 && h > 0 {
			pl.Bounds = texture.UVBounds{
				MaxU: float32(w) / float32(maxW),
				MaxV: float32(h) / float32(maxH),
			}
		}

		if err := placements.Set(rec.ID(), pl); err != nil {
			return nil, err
		}
	}

	return placements, nil
}
