package track

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/nfstex/pkg/texture"
)

// UVRequest asks for the coordinates of one textured quad.
type UVRequest struct {
	TextureID uint32
	Kind      texture.EntityKind
	Flags     uint32 // format-native polygon texture flags
}

// UVResult holds the coordinates generated for a request. UVs is empty when
// the entity kind takes no coordinates from the texture.
type UVResult struct {
	Request UVRequest
	UVs     []texture.UV
}

// GenerateUVs computes coordinates for every request using a pool of workers
// (0 = one per CPU). Results are in request order.
//
// Any failure aborts the batch and no results are returned. A texture whose
// format cannot generate UVs fails with an error wrapping
// texture.ErrUnsupportedFormat.
func (s *TextureSet) GenerateUVs(reqs []UVRequest, workers int) ([]UVResult, error) {
	if s.placements == nil {
		return nil, ErrNotPacked
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, max(len(reqs), 1))

	results := make([]UVResult, len(reqs))
	errs := make([]error, len(reqs))
	var failed atomic.Bool

	reqChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range reqChan {
				if failed.Load() {
					continue
				}
				results[idx], errs[idx] = s.generate(reqs[idx])
				if errs[idx] != nil {
					failed.Store(true)
				}
			}
		}()
	}

	for i := range reqs {
		reqChan <- i
	}
	close(reqChan)
	wg.Wait()

	for i, err := range errs {
		if err == nil {
			continue
		}
		req := reqs[i]
		fields := []zap.Field{
			zap.Uint32("texture_id", req.TextureID),
			zap.Stringer("kind", req.Kind),
			zap.Uint32("flags", req.Flags),
			zap.Error(err),
		}
		if errors.Is(err, texture.ErrUnsupportedFormat) {
			s.log.Error("UV generation not supported, aborting track load", fields...)
		} else {
			s.log.Error("UV generation failed", fields...)
		}
		return nil, fmt.Errorf("request %d: %w", i, err)
	}

	return results, nil
}

// generate is safe to call concurrently once the set is packed.
func (s *TextureSet) generate(req UVRequest) (UVResult, error) {
	rec, ok := s.records[req.TextureID]
	if !ok {
		return UVResult{}, fmt.Errorf("%w: %d", ErrUnknownTexture, req.TextureID)
	}

	pl, _ := s.placements.Get(req.TextureID)
	uvs, err := texture.GenerateUVs(rec, pl, req.Kind, req.Flags)
	if err != nil {
		return UVResult{}, fmt.Errorf("texture %d: %w", req.TextureID, err)
	}
	return UVResult{Request: req, UVs: uvs}, nil
}
