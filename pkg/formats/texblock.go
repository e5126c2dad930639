package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// Texture block errors.
var (
	ErrTruncatedTexBlockData = errors.New("truncated texture block data")
	ErrInvalidBlockCount     = errors.New("invalid texture block count")
)

// On-disk block sizes.
const (
	TRKTextureBlockSize = 10
	FRDTextureBlockSize = 47
)

// TRKTextureBlock is a texture entry from the NFS2-era TRK/COL track files.
// It only carries the texture number; dimensions live in the QFS container.
type TRKTextureBlock struct {
	TexNumber     uint16
	AlignmentData uint16
	RGB           [3]uint8
	RGBBlack      [3]uint8
}

// FRDTextureBlock is a texture entry from the NFS3/NFS4 FRD track files.
type FRDTextureBlock struct {
	Width    uint16
	Height   uint16
	Unknown1 uint32
	Corners  [8]float32 // four (x, y) pairs in block-native texture space
	Unknown2 uint32
	IsLane   bool
	QFSIndex uint16
}

// Corner returns the i-th (x, y) corner pair. i must be in [0, 3].
func (b FRDTextureBlock) Corner(i int) (x, y float32) {
	return b.Corners[i*2], b.Corners[i*2+1]
}

// ParseTRKTextureBlock parses a single TRK texture block.
func ParseTRKTextureBlock(data []byte) (TRKTextureBlock, error) {
	if len(data) < TRKTextureBlockSize {
		return TRKTextureBlock{}, fmt.Errorf("%w: need %d bytes, got %d", ErrTruncatedTexBlockData, TRKTextureBlockSize, len(data))
	}
	return parseTRKTextureBlock(bytes.NewReader(data))
}

// ParseFRDTextureBlock parses a single FRD texture block.
func ParseFRDTextureBlock(data []byte) (FRDTextureBlock, error) {
	if len(data) < FRDTextureBlockSize {
		return FRDTextureBlock{}, fmt.Errorf("%w: need %d bytes, got %d", ErrTruncatedTexBlockData, FRDTextureBlockSize, len(data))
	}
	return parseFRDTextureBlock(bytes.NewReader(data))
}

// ParseTRKTextureBlocks parses a block table: a uint32 count followed by count blocks.
func ParseTRKTextureBlocks(data []byte) ([]TRKTextureBlock, error) {
	r, count, err := readBlockCount(data, TRKTextureBlockSize)
	if err != nil {
		return nil, err
	}

	blocks := make([]TRKTextureBlock, count)
	for i := range blocks {
		block, err := parseTRKTextureBlock(r)
		if err != nil {
			return nil, fmt.Errorf("parsing TRK block %d: %w", i, err)
		}
		blocks[i] = block
	}
	return blocks, nil
}

// ParseFRDTextureBlocks parses a block table: a uint32 count followed by count blocks.
func ParseFRDTextureBlocks(data []byte) ([]FRDTextureBlock, error) {
	r, count, err := readBlockCount(data, FRDTextureBlockSize)
	if err != nil {
		return nil, err
	}

	blocks := make([]FRDTextureBlock, count)
	for i := range blocks {
		block, err := parseFRDTextureBlock(r)
		if err != nil {
			return nil, fmt.Errorf("parsing FRD block %d: %w", i, err)
		}
		blocks[i] = block
	}
	return blocks, nil
}

// ParseTRKTextureBlocksFile parses a TRK block table from disk.
func ParseTRKTextureBlocksFile(path string) ([]TRKTextureBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TRK block file: %w", err)
	}
	return ParseTRKTextureBlocks(data)
}

// ParseFRDTextureBlocksFile parses an FRD block table from disk.
func ParseFRDTextureBlocksFile(path string) ([]FRDTextureBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading FRD block file: %w", err)
	}
	return ParseFRDTextureBlocks(data)
}

// readBlockCount reads the table header and checks the declared count
// against the bytes that follow it.
func readBlockCount(data []byte, blockSize int) (*bytes.Reader, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("%w: reading block count", ErrTruncatedTexBlockData)
	}
	count := binary.LittleEndian.Uint32(data[0:4])
	remaining := len(data) - 4
	if uint64(count)*uint64(blockSize) > uint64(remaining) {
		return nil, 0, fmt.Errorf("%w: %d blocks of %d bytes, %d bytes available", ErrInvalidBlockCount, count, blockSize, remaining)
	}
	return bytes.NewReader(data[4:]), int(count), nil
}

func parseTRKTextureBlock(r *bytes.Reader) (TRKTextureBlock, error) {
	var block TRKTextureBlock

	if err := binary.Read(r, binary.LittleEndian, &block.TexNumber); err != nil {
		return TRKTextureBlock{}, fmt.Errorf("%w: reading texture number", ErrTruncatedTexBlockData)
	}
	if err := binary.Read(r, binary.LittleEndian, &block.AlignmentData); err != nil {
		return TRKTextureBlock{}, fmt.Errorf("%w: reading alignment data", ErrTruncatedTexBlockData)
	}
	if err := binary.Read(r, binary.LittleEndian, &block.RGB); err != nil {
		return TRKTextureBlock{}, fmt.Errorf("%w: reading RGB", ErrTruncatedTexBlockData)
	}
	if err := binary.Read(r, binary.LittleEndian, &block.RGBBlack); err != nil {
		return TRKTextureBlock{}, fmt.Errorf("%w: reading RGB black", ErrTruncatedTexBlockData)
	}

	return block, nil
}

func parseFRDTextureBlock(r *bytes.Reader) (FRDTextureBlock, error) {
	var block FRDTextureBlock

	if err := binary.Read(r, binary.LittleEndian, &block.Width); err != nil {
		return FRDTextureBlock{}, fmt.Errorf("%w: reading width", ErrTruncatedTexBlockData)
	}
	if err := binary.Read(r, binary.LittleEndian, &block.Height); err != nil {
		return FRDTextureBlock{}, fmt.Errorf("%w: reading height", ErrTruncatedTexBlockData)
	}
	if err := binary.Read(r, binary.LittleEndian, &block.Unknown1); err != nil {
		return FRDTextureBlock{}, fmt.Errorf("%w: reading unknown1", ErrTruncatedTexBlockData)
	}
	for i := range block.Corners {
		if err := binary.Read(r, binary.LittleEndian, &block.Corners[i]); err != nil {
			return FRDTextureBlock{}, fmt.Errorf("%w: reading corner[%d]", ErrTruncatedTexBlockData, i)
		}
	}
	if err := binary.Read(r, binary.LittleEndian, &block.Unknown2); err != nil {
		return FRDTextureBlock{}, fmt.Errorf("%w: reading unknown2", ErrTruncatedTexBlockData)
	}

	// Lane flag is a single byte on disk
	lane, err := r.ReadByte()
	if err != nil {
		return FRDTextureBlock{}, fmt.Errorf("%w: reading lane flag", ErrTruncatedTexBlockData)
	}
	block.IsLane = lane != 0

	if err := binary.Read(r, binary.LittleEndian, &block.QFSIndex); err != nil {
		return FRDTextureBlock{}, fmt.Errorf("%w: reading QFS index", ErrTruncatedTexBlockData)
	}

	return block, nil
}
