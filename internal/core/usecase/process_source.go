package usecase

import (
	"context"
	"fmt"

	"github.com/Ilyass-shw/apartment-bot/internal/contextkeys"
	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
	"github.com/Ilyass-shw/apartment-bot/internal/core/port"
)

// ProcessSourceUseCase - один generic pipeline для всех источников:
// fetch -> проверка seen-set -> side effects -> mark seen.
// Источники различаются только вариантом (fetcher, наличие подачи заявки),
// сам цикл фильтрации не дублируется.
type ProcessSourceUseCase struct {
	source   port.ListingSourcePort
	seenRepo port.SeenListingsPort
	notifier port.NotifierPort

	// appSender задан только для API-источника; для порталов nil.
	appSender port.ApplicationSenderPort

	// markSeenOnApplyFailure - политика при неудачной подаче заявки:
	// true (fail-open) - объявление всё равно помечается как виденное,
	// повторная заявка важнее пропущенной; false (fail-closed) - объявление
	// не помечается и будет обработано заново в следующем цикле.
	markSeenOnApplyFailure bool
}

// NewProcessSourceUseCase создает pipeline для одного источника.
func NewProcessSourceUseCase(
	source port.ListingSourcePort,
	seenRepo port.SeenListingsPort,
	notifier port.NotifierPort,
	appSender port.ApplicationSenderPort,
	markSeenOnApplyFailure bool,
) *ProcessSourceUseCase {
	return &ProcessSourceUseCase{
		source:                 source,
		seenRepo:               seenRepo,
		notifier:               notifier,
		appSender:              appSender,
		markSeenOnApplyFailure: markSeenOnApplyFailure,
	}
}

// Execute выполняет один цикл обработки источника. Ошибка fetch логируется
// и превращается в пустую выборку: один сломанный опрос не должен убить
// расписание и не отравляет следующие циклы. Возвращаемая ошибка
// зарезервирована для отмены контекста.
func (uc *ProcessSourceUseCase) Execute(ctx context.Context) error {
	tag := uc.source.Tag()

	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{
		"use_case": "ProcessSource",
		"source":   tag,
	})

	ucLogger.Info("Starting processing cycle", nil)

	listings, err := uc.source.FetchAll(ctx)
	if err != nil {
		ucLogger.Error("Fetch failed, treating cycle as empty", err, nil)
		listings = nil
	}

	ucLogger.Info("Fetched listings", port.Fields{"total": len(listings)})

	newCount := 0
	for _, listing := range listings {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		recLogger := ucLogger.WithFields(port.Fields{
			"listing_id": listing.ID,
			"title":      listing.Title,
		})

		seen, err := uc.seenRepo.IsSeen(ctx, tag, listing.ID)
		if err != nil {
			// Запись пропускается в этом цикле и будет проверена снова в следующем
			recLogger.Error("Seen-set lookup failed, skipping record", err, nil)
			continue
		}
		if seen {
			recLogger.Debug("Listing already seen, skipping", nil)
			continue
		}

		recLogger.Info("New listing found", port.Fields{"address": listing.Address, "price": listing.Price})

		if err := uc.runSideEffects(ctx, recLogger, listing); err != nil {
			// Не помечаем как виденное: объявление будет обработано заново
			recLogger.Error("Side-effect chain failed, listing will be retried next cycle", err, nil)
			continue
		}

		// MarkSeen строго после side effects: гарантия at-least-once,
		// не exactly-once. Падение процесса между этими шагами приведет
		// к повторному уведомлению в следующем цикле.
		if err := uc.seenRepo.MarkSeen(ctx, tag, listing.ID); err != nil {
			recLogger.Error("Failed to mark listing as seen", err, nil)
			continue
		}
		newCount++
	}

	ucLogger.Info("Processing cycle finished", port.Fields{"new_listings": newCount})
	return nil
}

// runSideEffects выполняет цепочку действий для нового объявления.
// Ошибка уведомления логируется и не прерывает цепочку: неудавшееся
// уведомление не должно блокировать MarkSeen.
func (uc *ProcessSourceUseCase) runSideEffects(ctx context.Context, logger port.LoggerPort, listing domain.ListingRecord) error {
	if uc.appSender != nil {
		if err := uc.appSender.SendApplication(ctx, listing); err != nil {
			if !uc.markSeenOnApplyFailure {
				return fmt.Errorf("application submission failed: %w", err)
			}
			logger.Warn("Application submission failed, marking as seen anyway (fail-open policy)", port.Fields{
				"error": err.Error(),
			})
		} else {
			logger.Info("Application submitted", nil)
		}
	}

	if err := uc.notifier.Notify(ctx, listing); err != nil {
		logger.Error("Failed to send notification", err, nil)
	}

	return nil
}
