package port

import (
	"context"

	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
)

// SeenListingsPort определяет контракт для durable seen-set хранилища.
// Реализация должна переживать рестарты процесса; ядро не зависит от того,
// какой именно бекенд за портом (Postgres, in-memory для тестов).
type SeenListingsPort interface {
	// Init создает схему хранилища, если её ещё нет. Безопасен как для
	// пустого, так и для уже инициализированного бекенда.
	Init(ctx context.Context) error

	// IsSeen возвращает false для неизвестных id, включая свежее пустое хранилище.
	IsSeen(ctx context.Context, source domain.SourceTag, listingID string) (bool, error)

	// MarkSeen идемпотентен: повторная пометка уже виденного id - no-op, не ошибка.
	MarkSeen(ctx context.Context, source domain.SourceTag, listingID string) error

	// CountBySource возвращает количество виденных объявлений по каждому источнику.
	CountBySource(ctx context.Context) (map[domain.SourceTag]int64, error)
}
