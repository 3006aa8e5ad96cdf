package memstore

import (
	"context"
	"testing"

	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkSeenIsIdempotent(t *testing.T) {
	repo := NewMemorySeenListingsRepository()
	ctx := context.Background()

	require.NoError(t, repo.MarkSeen(ctx, domain.SourceGewobag, "123"))
	require.NoError(t, repo.MarkSeen(ctx, domain.SourceGewobag, "123"))

	seen, err := repo.IsSeen(ctx, domain.SourceGewobag, "123")
	require.NoError(t, err)
	assert.True(t, seen)

	counts, err := repo.CountBySource(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[domain.SourceGewobag])
}

func TestSeenEntriesAreScopedBySource(t *testing.T) {
	repo := NewMemorySeenListingsRepository()
	ctx := context.Background()

	require.NoError(t, repo.MarkSeen(ctx, domain.SourceGewobag, "123"))

	seen, err := repo.IsSeen(ctx, domain.SourceDegewo, "123")
	require.NoError(t, err)
	assert.False(t, seen, "same ID under a different source must be unseen")
}

func TestCountBySource(t *testing.T) {
	repo := NewMemorySeenListingsRepository()
	ctx := context.Background()

	require.NoError(t, repo.MarkSeen(ctx, domain.SourceGewobag, "1"))
	require.NoError(t, repo.MarkSeen(ctx, domain.SourceGewobag, "2"))
	require.NoError(t, repo.MarkSeen(ctx, domain.SourceWohnraumkarte, "1"))

	counts, err := repo.CountBySource(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[domain.SourceGewobag])
	assert.Equal(t, int64(1), counts[domain.SourceWohnraumkarte])
	assert.Zero(t, counts[domain.SourceDegewo])
}
