package memory

import (
	"time"

	"ai-resumebuilder-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ContextRepository is the cache-aside store for assembled conversation
// contexts. Staleness contract: a single writer per conversation; the
// cached object is never reconciled against concurrent external writers.
type ContextRepository struct {
	cache *cache.Cache
}

func NewContextRepository() *ContextRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ContextRepository{
		cache: c,
	}
}

func (r *ContextRepository) Save(context *store.Context) {
	r.cache.Set(context.ConversationId.String(), context, cache.DefaultExpiration)
}

func (r *ContextRepository) Get(conversationId string) (*store.Context, bool) {
	if x, found := r.cache.Get(conversationId); found {
		return x.(*store.Context), true
	}
	return nil, false
}

func (r *ContextRepository) Delete(conversationId string) {
	r.cache.Delete(conversationId)
}
