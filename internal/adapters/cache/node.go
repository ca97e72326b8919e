package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/core/ports"
)

const NodeID graft.ID = "adapter.cache_store"

// DefaultDir is the cache directory used when no explicit path is given.
const DefaultDir = domain.CacheDirName

func init() {
	graft.Register(graft.Node[ports.CacheStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			return NewStore(DefaultDir), nil
		},
	})
}
