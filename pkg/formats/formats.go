// Package formats provides parsers for the texture block tables of Need for
// Speed track files.
//
// NFS2-family TRK files describe each texture with a TRKTextureBlock; NFS3
// and NFS4 FRD files use the larger FRDTextureBlock, which also carries the
// texture size, lane flag and UV corner points. All values are little-endian.
package formats
