package optical

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ctessum/requestcache"
)

// renderKey identifies one rendered OpticalInfo: the model's content hash
// (caller-supplied, e.g. a hash of its geometry/constructions) paired with
// the Reinhart subdivision factor used to render it.
type renderKey struct {
	ModelHash string
	MF        int
}

// RenderCache memoizes OpticalInfo renders keyed by (modelHash, MF), so
// repeated SolarModel construction against the same model within one
// process (across test cases, or across a run that rebuilds its solar
// model) does not re-render the daylight-coefficient matrices.
type RenderCache struct {
	once  sync.Once
	cache *requestcache.Cache
	fn    func(modelHash string, mf int) (*OpticalInfo, error)
}

// NewRenderCache returns a RenderCache backed by render, with up to
// runtime.GOMAXPROCS(-1) renders proceeding concurrently.
func NewRenderCache(render func(modelHash string, mf int) (*OpticalInfo, error)) *RenderCache {
	return &RenderCache{fn: render}
}

func (c *RenderCache) ensure() {
	c.once.Do(func() {
		c.cache = requestcache.NewCache(func(ctx context.Context, req interface{}) (interface{}, error) {
			key := req.(renderKey)
			return c.fn(key.ModelHash, key.MF)
		}, runtime.GOMAXPROCS(-1), requestcache.Memory(100))
	})
}

// Get returns the OpticalInfo for (modelHash, mf), rendering it on first
// request and serving cached results thereafter.
func (c *RenderCache) Get(ctx context.Context, modelHash string, mf int) (*OpticalInfo, error) {
	c.ensure()
	key := renderKey{ModelHash: modelHash, MF: mf}
	req := c.cache.NewRequest(ctx, key, fmt.Sprintf("%s-%d", modelHash, mf))
	result, err := req.Result()
	if err != nil {
		return nil, fmt.Errorf("optical: rendering optical info for mf=%d: %w", mf, err)
	}
	return result.(*OpticalInfo), nil
}
