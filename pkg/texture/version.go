// Package texture resolves track texture metadata across the NFS track formats
// and synthesizes per-vertex texture coordinates for textured quads.
package texture

import (
	"fmt"
	"strings"
)

// Version identifies the on-disk game format a texture was decoded from.
type Version uint8

const (
	Unknown Version = iota
	NFS1
	NFS2
	NFS2PS1
	NFS2SE
	NFS3
	NFS3PS1
	NFS4
	NFS4PS1
	MCO
	NFS5

	versionCount
)

var versionNames = [versionCount]string{
	Unknown: "UNKNOWN",
	NFS1:    "NFS_1",
	NFS2:    "NFS_2",
	NFS2PS1: "NFS_2_PS1",
	NFS2SE:  "NFS_2_SE",
	NFS3:    "NFS_3",
	NFS3PS1: "NFS_3_PS1",
	NFS4:    "NFS_4",
	NFS4PS1: "NFS_4_PS1",
	MCO:     "MCO",
	NFS5:    "NFS_5",
}

// Versions returns every known version in declaration order.
func Versions() []Version {
	vs := make([]Version, 0, versionCount)
	for v := Unknown; v < versionCount; v++ {
		vs = append(vs, v)
	}
	return vs
}

// String returns the canonical version name, e.g. "NFS_3_PS1".
func (v Version) String() string {
	if v < versionCount {
		return versionNames[v]
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}

// Valid reports whether v is a declared version.
func (v Version) Valid() bool {
	return v < versionCount
}

// ParseVersion parses a version name. Matching ignores case, and dashes or
// underscores are optional, so "nfs3-ps1", "NFS_3_PS1" and "nfs3ps1" are equal.
func ParseVersion(s string) (Version, error) {
	key := normalizeName(s)
	for v := Unknown; v < versionCount; v++ {
		if normalizeName(versionNames[v]) == key {
			return v, nil
		}
	}
	return Unknown, fmt.Errorf("unknown texture format %q", s)
}

func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}

// PayloadKind names the raw payload variant a version carries.
type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota
	PayloadTRK
	PayloadFRD
)

// String returns a human-readable payload kind name.
func (k PayloadKind) String() string {
	switch k {
	case PayloadNone:
		return "None"
	case PayloadTRK:
		return "TRKTextureBlock"
	case PayloadFRD:
		return "FRDTextureBlock"
	default:
		return fmt.Sprintf("PayloadKind(%d)", uint8(k))
	}
}

// PayloadKind returns the raw payload variant expected for records of this version.
func (v Version) PayloadKind() PayloadKind {
	switch v {
	case NFS2, NFS2PS1, NFS2SE, NFS3PS1:
		return PayloadTRK
	case NFS3, NFS4:
		return PayloadFRD
	case Unknown, NFS1, NFS4PS1, MCO, NFS5:
		return PayloadNone
	}
	panic(fmt.Sprintf("texture: unhandled version %s", v))
}
