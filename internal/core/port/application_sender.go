package port

import (
	"context"

	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
)

// ApplicationSenderPort определяет контракт для автоматической подачи
// заявки на объявление (только для API-источника).
type ApplicationSenderPort interface {
	SendApplication(ctx context.Context, listing domain.ListingRecord) error
}
