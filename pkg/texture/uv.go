package texture

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/nfstex/pkg/formats"
)

// ErrUnsupportedFormat is returned when UV generation is requested for a format
// whose rules are known to exist but are not implemented. Callers must not
// proceed with the asset; an empty result would silently corrupt geometry.
var ErrUnsupportedFormat = errors.New("UV generation not implemented for format")

// UV is a texture coordinate.
type UV = mgl32.Vec2

// Quad is two triangles sharing the first-to-third vertex diagonal.
type Quad [6]UV

// Pivot is the point quads rotate about.
var Pivot = UV{0.5, 0.5}

// unitQuad is the axis-aligned quad used when a format has no corner geometry.
var unitQuad = Quad{
	{1, 1}, {0, 1}, {0, 0},
	{1, 1}, {0, 0}, {1, 0},
}

// UVTransform parameterizes the rotate, flip and scale pipeline.
type UVTransform struct {
	Pivot    UV
	Quadrant uint8 // rotation in multiples of 90 degrees
	HFlip    bool
	VFlip    bool
	ScaleU   float32
	ScaleV   float32
}

// Transform rotates every vertex of q about the pivot, then applies the flips,
// then scales into the atlas slot.
//
// The rotation treats each point as a row vector: p' = (p - pivot) * R + pivot
// with R = [[cos, sin], [-sin, cos]]. Existing track assets depend on this
// exact orientation.
//
// R's entries are listed column by column, as glm's mat2 constructor takes
// them, so a quarter turn maps (x, y) to (y, 1-x), not (1-y, x).
func Transform(q Quad, t UVTransform) Quad {
	angle := mgl32.DegToRad(float32(t.Quadrant) * 90)
	// Row-vector product p*R equals R^T * p
	rot := mgl32.Rotate2D(angle).Transpose()

	var out Quad
	for i, uv := range q {
		uv = rot.Mul2x1(uv.Sub(t.Pivot)).Add(t.Pivot)
		if t.HFlip {
			uv[0] = 1 - uv[0]
		}
		if t.VFlip {
			uv[1] = 1 - uv[1]
		}
		out[i] = UV{uv[0] * t.ScaleU, uv[1] * t.ScaleV}
	}
	return out
}

// GenerateUVs returns the six texture coordinates of one textured quad for a
// record bound to geometry of the given kind. flags is the format-native
// texture flags word of the polygon. The result is scaled into the record's
// atlas slot using p.Bounds.MaxU and p.Bounds.MaxV.
//
// An empty result means the kind takes no coordinates from this texture. An
// error wrapping ErrUnsupportedFormat means the format is not decodable yet.
func GenerateUVs(r *Record, p Placement, kind EntityKind, flags uint32) ([]UV, error) {
	switch r.version {
	case NFS1:
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, r.version, kind)
	case NFS2, NFS2PS1, NFS2SE, NFS3PS1:
		return trkUVs(p, kind, flags), nil
	case NFS4:
		return frdUVs(r.FRDBlock(), p, kind, flags), nil
	case Unknown, NFS3, NFS4PS1, MCO, NFS5:
		// NFS3 polygons carry their own coordinates in the FRD geometry.
		return nil, nil
	}
	panic(fmt.Sprintf("texture: unhandled version %s", r.version))
}

// trkUVs builds coordinates for NFS2-family geometry.
func trkUVs(p Placement, kind EntityKind, flags uint32) []UV {
	var o Orientation
	switch kind {
	case XObj:
		// Object texture flags do not expose a rotation field yet
	case Road:
		o = DecodeTRKFlags(flags)
	default:
		return nil
	}

	q := Transform(unitQuad, transformFor(o, p))
	return q[:]
}

// frdUVs builds coordinates for NFS4 geometry from the block's corner points.
func frdUVs(b formats.FRDTextureBlock, p Placement, kind EntityKind, flags uint32) []UV {
	var q Quad
	switch kind {
	case XObj:
		// Object corners are stored mirrored on both axes
		q = cornerQuad(b, true)
	case ObjPoly, Road, Lane, Global:
		q = cornerQuad(b, false)
	default:
		return nil
	}

	q = Transform(q, transformFor(DecodeFRDFlags(flags), p))
	return q[:]
}

// cornerQuad orders the block corners as (c0, c1, c2, c0, c2, c3), flipping V
// and, when mirrorU is set, U.
func cornerQuad(b formats.FRDTextureBlock, mirrorU bool) Quad {
	var c [4]UV
	for i := range c {
		x, y := b.Corner(i)
		if mirrorU {
			x = 1 - x
		}
		c[i] = UV{x, 1 - y}
	}
	return Quad{c[0], c[1], c[2], c[0], c[2], c[3]}
}

func transformFor(o Orientation, p Placement) UVTransform {
	return UVTransform{
		Pivot:    Pivot,
		Quadrant: o.Quadrant,
		HFlip:    o.HFlip,
		VFlip:    o.VFlip,
		ScaleU:   p.Bounds.MaxU,
		ScaleV:   p.Bounds.MaxV,
	}
}
