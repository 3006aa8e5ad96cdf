package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ilyass-shw/apartment-bot/internal/contextkeys"
	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
	"github.com/Ilyass-shw/apartment-bot/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSeenListingsRepository - durable реализация seen-set на PostgreSQL.
// Таблица партиционирована по источнику через составной первичный ключ:
// одинаковый id с разных площадок не конфликтует. Записи append-only,
// никогда не обновляются и не удаляются (рост таблицы при ожидаемых объемах
// объявлений приемлем).
type PostgresSeenListingsRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSeenListingsRepository - конструктор.
func NewPostgresSeenListingsRepository(pool *pgxpool.Pool) (*PostgresSeenListingsRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresSeenListingsRepository{pool: pool}, nil
}

// Init создает схему, если её нет. Безопасен и для пустой,
// и для уже инициализированной базы.
func (r *PostgresSeenListingsRepository) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS seen_listings (
			source        TEXT        NOT NULL,
			listing_id    TEXT        NOT NULL,
			first_seen_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (source, listing_id)
		)`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to initialize seen_listings schema: %w", err)
	}
	return nil
}

// IsSeen возвращает false для неизвестных id, в том числе на пустой базе.
func (r *PostgresSeenListingsRepository) IsSeen(ctx context.Context, source domain.SourceTag, listingID string) (bool, error) {
	query := `SELECT 1 FROM seen_listings WHERE source = $1 AND listing_id = $2`

	var one int
	err := r.pool.QueryRow(ctx, query, string(source), listingID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to query seen listing: %w", err)
	}
	return true, nil
}

// MarkSeen помечает объявление как обработанное. Повторная пометка - no-op:
// нарушение уникальности поглощается, не возвращается как ошибка
// (пересекающиеся прогоны одного источника могут пометить один ключ дважды).
func (r *PostgresSeenListingsRepository) MarkSeen(ctx context.Context, source domain.SourceTag, listingID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresSeenListingsRepository",
		"method":     "MarkSeen",
		"source":     source,
		"listing_id": listingID,
	})

	query := `INSERT INTO seen_listings (source, listing_id) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, string(source), listingID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // 23505 - unique_violation
			repoLogger.Warn("Listing already marked as seen, operation considered successful.", nil)
			return nil
		}
		repoLogger.Error("Failed to mark listing as seen", err, port.Fields{"query": query})
		return fmt.Errorf("failed to mark listing as seen: %w", err)
	}

	return nil
}

// CountBySource возвращает количество виденных объявлений по каждому источнику.
func (r *PostgresSeenListingsRepository) CountBySource(ctx context.Context) (map[domain.SourceTag]int64, error) {
	query := `SELECT source, count(*) FROM seen_listings GROUP BY source`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query seen counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.SourceTag]int64)
	for rows.Next() {
		var source string
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan seen count row: %w", err)
		}
		counts[domain.SourceTag(source)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during seen counts iteration: %w", err)
	}

	return counts, nil
}
