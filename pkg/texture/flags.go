package texture

// Orientation is a decoded texture orientation flags word.
type Orientation struct {
	Quadrant  uint8 // rotation in multiples of 90 degrees, 0-3
	HFlip     bool
	VFlip     bool
	TileScale uint8 // 0 = none, 1-4 = tiling multiple (see Tiling)
	OneSided  bool
}

// FRD (NFS3/NFS4) flag layout:
//
//	bits 2-3  rotation quadrant
//	bit  4    horizontal flip
//	bit  5    vertical flip
//	bits 6-8  tiling scale
//	bit  15   one-sided polygon
const (
	frdQuadrantShift = 2
	frdHFlipBit      = 0x10
	frdVFlipBit      = 0x20
	frdTileShift     = 6
	frdOneSidedBit   = 0x8000
)

// TRK (NFS2 family) road polygons keep their rotation quadrant in bits 11-12.
// The format has no flip bits that are understood yet.
const trkQuadrantShift = 11

// DecodeFRDFlags decodes an NFS3/NFS4 polygon texture flags word.
func DecodeFRDFlags(flags uint32) Orientation {
	return Orientation{
		Quadrant:  uint8((flags >> frdQuadrantShift) & 3),
		HFlip:     flags&frdHFlipBit != 0,
		VFlip:     flags&frdVFlipBit != 0,
		TileScale: uint8((flags >> frdTileShift) & 7),
		OneSided:  flags&frdOneSidedBit != 0,
	}
}

// DecodeTRKFlags decodes an NFS2-family road texture flags word.
func DecodeTRKFlags(flags uint32) Orientation {
	return Orientation{
		Quadrant: uint8((flags >> trkQuadrantShift) & 3),
	}
}

// Tiling returns how many times the texture repeats along U and V.
// ok is false for tile scale values with no defined meaning.
func (o Orientation) Tiling() (repeatU, repeatV int, ok bool) {
	switch o.TileScale {
	case 0:
		return 1, 1, true
	case 1:
		return 2, 1, true
	case 2:
		return 1, 2, true
	case 3:
		return 4, 1, true
	case 4:
		return 1, 4, true
	}
	return 1, 1, false
}
