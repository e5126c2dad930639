package texture

import (
	"errors"
	"fmt"

	"github.com/Faultbox/nfstex/pkg/formats"
)

// Record construction errors.
var (
	ErrEmptyPixelData  = errors.New("texture has no pixel data")
	ErrPayloadMismatch = errors.New("texture payload does not match format")
)

// Payload is the raw per-format texture block a record was decoded from.
// Exactly one variant is active; use the constructors to build one.
type Payload struct {
	kind PayloadKind
	trk  formats.TRKTextureBlock
	frd  formats.FRDTextureBlock
}

// NoPayload is the payload for formats that carry no texture block.
func NoPayload() Payload {
	return Payload{kind: PayloadNone}
}

// TRKPayload wraps an NFS2-family texture block.
func TRKPayload(b formats.TRKTextureBlock) Payload {
	return Payload{kind: PayloadTRK, trk: b}
}

// FRDPayload wraps an NFS3/NFS4 texture block.
func FRDPayload(b formats.FRDTextureBlock) Payload {
	return Payload{kind: PayloadFRD, frd: b}
}

// Kind returns the active variant.
func (p Payload) Kind() PayloadKind {
	return p.kind
}

// TRK returns the NFS2-family texture block. It panics if another variant is active.
func (p Payload) TRK() formats.TRKTextureBlock {
	if p.kind != PayloadTRK {
		panic(fmt.Sprintf("texture: %s payload read as %s", p.kind, PayloadTRK))
	}
	return p.trk
}

// FRD returns the NFS3/NFS4 texture block. It panics if another variant is active.
func (p Payload) FRD() formats.FRDTextureBlock {
	if p.kind != PayloadFRD {
		panic(fmt.Sprintf("texture: %s payload read as %s", p.kind, PayloadFRD))
	}
	return p.frd
}

// Record holds one track texture: its origin format, id, pixel bytes and the
// raw block it was decoded from. Records are immutable after NewRecord.
type Record struct {
	version Version
	id      uint32
	data    []byte
	width   uint32
	height  uint32
	payload Payload
}

// NewRecord builds a record. width and height may be 0 when they are not known
// yet; Width and Height resolve them from the payload where the format allows.
// The pixel data is copied.
func NewRecord(version Version, id uint32, data []byte, width, height uint32, payload Payload) (*Record, error) {
	if !version.Valid() {
		return nil, fmt.Errorf("%w: invalid version %s", ErrPayloadMismatch, version)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: texture %d", ErrEmptyPixelData, id)
	}
	if want := version.PayloadKind(); payload.kind != want {
		return nil, fmt.Errorf("%w: %s expects %s, got %s", ErrPayloadMismatch, version, want, payload.kind)
	}

	owned := make([]byte, len(data))
	copy(owned, data)

	return &Record{
		version: version,
		id:      id,
		data:    owned,
		width:   width,
		height:  height,
		payload: payload,
	}, nil
}

// Version returns the origin format.
func (r *Record) Version() Version { return r.version }

// ID returns the texture id within the owning track.
func (r *Record) ID() uint32 { return r.id }

// Data returns the pixel bytes. Callers must not modify the slice.
func (r *Record) Data() []byte { return r.data }

// StoredWidth returns the width given at construction (0 if unknown).
func (r *Record) StoredWidth() uint32 { return r.width }

// StoredHeight returns the height given at construction (0 if unknown).
func (r *Record) StoredHeight() uint32 { return r.height }

// Payload returns the raw payload.
func (r *Record) Payload() Payload { return r.payload }

// TRKBlock returns the NFS2-family texture block.
// It panics if the record does not carry one.
func (r *Record) TRKBlock() formats.TRKTextureBlock {
	if r.payload.kind != PayloadTRK {
		panic(fmt.Sprintf("texture: %s record %d has %s payload, not %s", r.version, r.id, r.payload.kind, PayloadTRK))
	}
	return r.payload.trk
}

// FRDBlock returns the NFS3/NFS4 texture block.
// It panics if the record does not carry one.
func (r *Record) FRDBlock() formats.FRDTextureBlock {
	if r.payload.kind != PayloadFRD {
		panic(fmt.Sprintf("texture: %s record %d has %s payload, not %s", r.version, r.id, r.payload.kind, PayloadFRD))
	}
	return r.payload.frd
}

// UVBounds is the sub-rectangle of a shared atlas layer a texture occupies.
type UVBounds struct {
	MinU, MinV float32
	MaxU, MaxV float32
}

// Valid reports whether the bounds are well ordered.
func (b UVBounds) Valid() bool {
	return b.MinU <= b.MaxU && b.MinV <= b.MaxV
}

// Placement is where an atlas packer put a texture. The zero value means the
// texture has not been placed and produces zero-scaled coordinates.
type Placement struct {
	Layer  uint32
	Bounds UVBounds
}
