package texture

import "fmt"

// attributeFamily groups versions by how their scalar attributes are stored.
type attributeFamily uint8

const (
	attrNone attributeFamily = iota // no mapping, defaults apply
	attrTRK                         // texture number only
	attrFRD                         // dimensions, lane flag and QFS index
)

func (v Version) attributeFamily() attributeFamily {
	switch v {
	case NFS2, NFS2PS1, NFS2SE, NFS3PS1:
		return attrTRK
	case NFS3, NFS4:
		return attrFRD
	case Unknown, NFS1, NFS4PS1, MCO, NFS5:
		return attrNone
	}
	panic(fmt.Sprintf("texture: unhandled version %s", v))
}

// Width returns the texture width stored in the record's payload,
// or 0 when the format does not carry one.
func Width(r *Record) uint32 {
	if r.version.attributeFamily() == attrFRD {
		return uint32(r.FRDBlock().Width)
	}
	return 0
}

// Height returns the texture height stored in the record's payload,
// or 0 when the format does not carry one.
func Height(r *Record) uint32 {
	if r.version.attributeFamily() == attrFRD {
		return uint32(r.FRDBlock().Height)
	}
	return 0
}

// IsLane reports whether the texture is a lane marker.
// Formats without a lane flag report false.
func IsLane(r *Record) bool {
	if r.version.attributeFamily() == attrFRD {
		return r.FRDBlock().IsLane
	}
	return false
}

// LookupID returns the id used to find the texture's pixels in the track's
// texture container: the texture number for TRK blocks and the QFS index for
// FRD blocks. Formats without a mapping return 0.
func LookupID(r *Record) uint32 {
	return PayloadLookupID(r.version, r.payload)
}

// PayloadLookupID resolves the lookup id of a payload before a record exists,
// e.g. to fetch its pixels. It panics if the payload does not match v.
func PayloadLookupID(v Version, p Payload) uint32 {
	switch v.attributeFamily() {
	case attrTRK:
		return uint32(p.TRK().TexNumber)
	case attrFRD:
		return uint32(p.FRD().QFSIndex)
	}
	return 0
}

// Dimensions returns the resolved size of a texture, falling back to the
// size given at construction when the payload has none.
func Dimensions(r *Record) (width, height uint32) {
	width, height = Width(r), Height(r)
	if width == 0 || height == 0 {
		return r.width, r.height
	}
	return width, height
}
