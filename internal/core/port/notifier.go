package port

import (
	"context"

	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
)

// NotifierPort определяет контракт для отправки уведомления о новом объявлении.
type NotifierPort interface {
	Notify(ctx context.Context, listing domain.ListingRecord) error
}
