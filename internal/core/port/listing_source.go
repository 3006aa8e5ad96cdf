package port

import (
	"context"

	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
)

// ListingSourcePort определяет контракт источника объявлений.
// FetchAll возвращает полностью материализованный срез за один вызов,
// не поток. Ошибка транспорта/парсинга возвращается вызывающему;
// границей обработки является pipeline (один неудачный опрос не должен
// убить расписание).
type ListingSourcePort interface {
	Tag() domain.SourceTag

	FetchAll(ctx context.Context) ([]domain.ListingRecord, error)
}
