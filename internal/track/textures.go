// Package track assembles the texture set of one track and drives atlas
// placement and UV generation for its geometry.
package track

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/nfstex/internal/atlas"
	"github.com/Faultbox/nfstex/internal/logger"
	"github.com/Faultbox/nfstex/pkg/formats"
	"github.com/Faultbox/nfstex/pkg/texture"
)

// Texture set errors.
var (
	ErrDuplicateTexture = errors.New("duplicate texture id")
	ErrVersionMismatch  = errors.New("texture format does not match track")
	ErrUnknownTexture   = errors.New("unknown texture id")
	ErrPacked           = errors.New("texture set already packed")
	ErrNotPacked        = errors.New("texture set not packed")
)

// Image is a texture extracted from the track's texture container.
// Width and Height are the decoded image size.
type Image struct {
	Data   []byte
	Width  uint32
	Height uint32
}

// PixelSource supplies extracted textures by lookup id.
type PixelSource interface {
	Pixels(lookupID uint32) (Image, error)
}

// PixelSourceFunc adapts a function to PixelSource.
type PixelSourceFunc func(lookupID uint32) (Image, error)

// Pixels calls f.
func (f PixelSourceFunc) Pixels(lookupID uint32) (Image, error) {
	return f(lookupID)
}

// TextureSet holds the distinct textures of one track, keyed by texture id.
// Textures are added during loading, then Pack fixes their atlas placement.
// After Pack the set is read-only and safe for concurrent use.
type TextureSet struct {
	version    texture.Version
	records    map[uint32]*texture.Record
	placements *atlas.Placements
	log        *zap.Logger
}

// NewTextureSet creates an empty set for a track of the given format.
func NewTextureSet(version texture.Version) *TextureSet {
	return &TextureSet{
		version: version,
		records: make(map[uint32]*texture.Record),
		log:     logger.Named("track").With(zap.Stringer("version", version)),
	}
}

// Version returns the track format.
func (s *TextureSet) Version() texture.Version {
	return s.version
}

// Add inserts a record. Records are never merged: a second record with the
// same id is rejected.
func (s *TextureSet) Add(rec *texture.Record) error {
	if s.placements != nil {
		return ErrPacked
	}
	if rec.Version() != s.version {
		return fmt.Errorf("%w: %s texture in %s track", ErrVersionMismatch, rec.Version(), s.version)
	}
	if _, ok := s.records[rec.ID()]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateTexture, rec.ID())
	}
	s.records[rec.ID()] = rec
	return nil
}

// Get returns the record with the given id.
func (s *TextureSet) Get(id uint32) (*texture.Record, bool) {
	rec, ok := s.records[id]
	return rec, ok
}

// Len returns the number of records.
func (s *TextureSet) Len() int {
	return len(s.records)
}

// Records returns all records in id order.
func (s *TextureSet) Records() []*texture.Record {
	out := make([]*texture.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID() < out[j].ID()
	})
	return out
}

// FromTRKBlocks builds the texture set of an NFS2-family track.
func FromTRKBlocks(version texture.Version, blocks []formats.TRKTextureBlock, src PixelSource) (*TextureSet, error) {
	payloads := make([]texture.Payload, len(blocks))
	for i, b := range blocks {
		payloads[i] = texture.TRKPayload(b)
	}
	return fromPayloads(version, payloads, src)
}

// FromFRDBlocks builds the texture set of an NFS3/NFS4 track.
func FromFRDBlocks(version texture.Version, blocks []formats.FRDTextureBlock, src PixelSource) (*TextureSet, error) {
	payloads := make([]texture.Payload, len(blocks))
	for i, b := range blocks {
		payloads[i] = texture.FRDPayload(b)
	}
	return fromPayloads(version, payloads, src)
}

// fromPayloads creates one record per distinct lookup id. Blocks that repeat
// an id refer to the texture already loaded.
func fromPayloads(version texture.Version, payloads []texture.Payload, src PixelSource) (*TextureSet, error) {
	if want := version.PayloadKind(); len(payloads) > 0 && payloads[0].Kind() != want {
		return nil, fmt.Errorf("%w: %s tracks use %s", texture.ErrPayloadMismatch, version, want)
	}

	set := NewTextureSet(version)
	for i, p := range payloads {
		id := texture.PayloadLookupID(version, p)
		if _, ok := set.records[id]; ok {
			set.log.Debug("texture block reuses loaded texture", zap.Int("block", i), zap.Uint32("texture_id", id))
			continue
		}

		img, err := src.Pixels(id)
		if err != nil {
			return nil, fmt.Errorf("loading pixels for texture %d: %w", id, err)
		}

		// TRK blocks carry no size, so the decoded image size is the only one.
		// FRD sizes from the block take precedence when resolved.
		rec, err := texture.NewRecord(version, id, img.Data, img.Width, img.Height, p)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		if err := set.Add(rec); err != nil {
			return nil, err
		}
	}

	set.log.Info("loaded track textures", zap.Int("blocks", len(payloads)), zap.Int("textures", set.Len()))
	return set, nil
}

// Pack assigns atlas placements to every texture. It may be called once;
// afterwards no textures can be added.
func (s *TextureSet) Pack(opts atlas.Options) error {
	if s.placements != nil {
		return ErrPacked
	}

	placements, err := atlas.Pack(s.Records(), opts)
	if err != nil {
		return fmt.Errorf("packing %s textures: %w", s.version, err)
	}
	s.placements = placements

	var lanes, unsized int
	for _, rec := range s.records {
		if texture.IsLane(rec) {
			lanes++
		}
		if w, h := texture.Dimensions(rec); w == 0 || h == 0 {
			unsized++
		}
	}
	if unsized > 0 {
		s.log.Warn("textures without dimensions will not render", zap.Int("count", unsized))
	}
	s.log.Debug("packed atlas", zap.Int("layers", placements.Len()), zap.Int("lanes", lanes))

	return nil
}

// Placement returns the atlas placement of a texture after Pack.
func (s *TextureSet) Placement(id uint32) (texture.Placement, bool) {
	if s.placements == nil {
		return texture.Placement{}, false
	}
	return s.placements.Get(id)
}
