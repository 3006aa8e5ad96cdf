package memstore

import (
	"context"
	"sync"

	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
)

type seenKey struct {
	source    domain.SourceTag
	listingID string
}

// MemorySeenListingsRepository - in-memory реализация seen-set за тем же
// портом, что и Postgres. Не переживает рестарт; используется в тестах
// и для локальных прогонов без базы.
type MemorySeenListingsRepository struct {
	mu   sync.RWMutex
	seen map[seenKey]struct{}
}

func NewMemorySeenListingsRepository() *MemorySeenListingsRepository {
	return &MemorySeenListingsRepository{
		seen: make(map[seenKey]struct{}),
	}
}

func (r *MemorySeenListingsRepository) Init(ctx context.Context) error {
	return nil
}

func (r *MemorySeenListingsRepository) IsSeen(ctx context.Context, source domain.SourceTag, listingID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.seen[seenKey{source: source, listingID: listingID}]
	return ok, nil
}

// MarkSeen идемпотентен: повторная пометка того же ключа - no-op.
func (r *MemorySeenListingsRepository) MarkSeen(ctx context.Context, source domain.SourceTag, listingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seen[seenKey{source: source, listingID: listingID}] = struct{}{}
	return nil
}

func (r *MemorySeenListingsRepository) CountBySource(ctx context.Context) (map[domain.SourceTag]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.SourceTag]int64)
	for key := range r.seen {
		counts[key.source]++
	}
	return counts, nil
}
