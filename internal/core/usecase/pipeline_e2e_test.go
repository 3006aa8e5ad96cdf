package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ilyass-shw/apartment-bot/internal/adapters/gewobagfetcher"
	"github.com/Ilyass-shw/apartment-bot/internal/adapters/memstore"
	"github.com/Ilyass-shw/apartment-bot/internal/adapters/telegram"
	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleOfferPage = `<!DOCTYPE html>
<html><body>
<div class="angebot-big-box" id="gewobag-7">
  <div class="angebot-address"><address>Foo 1</address></div>
  <h3 class="angebot-title">Bar</h3>
  <table class="angebot-area"><tr><td>40m²</td></tr></table>
  <table class="angebot-kosten"><tr><td>500€</td></tr></table>
</div>
</body></html>`

// Полный путь: страница портала -> адаптер -> pipeline -> уведомление -> seen-set.
func TestPipeline_PortalListingEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(singleOfferPage))
	}))
	defer server.Close()

	fetcher, err := gewobagfetcher.NewGewobagFetcherAdapter(server.URL, server.URL)
	require.NoError(t, err)

	seenRepo := memstore.NewMemorySeenListingsRepository()
	notifier := &stubNotifier{}

	uc := NewProcessSourceUseCase(fetcher, seenRepo, notifier, nil, true)
	require.NoError(t, uc.Execute(context.Background()))

	// Ровно одно уведомление, текст содержит адрес и аренду
	require.Equal(t, []string{"gewobag-7"}, notifier.notified)

	msg := telegram.BuildMessage(domain.ListingRecord{
		ID:        "gewobag-7",
		SourceTag: domain.SourceGewobag,
		Title:     "Bar",
		Address:   "Foo 1",
		Size:      "40m²",
		Price:     "500€",
	})
	assert.Contains(t, msg, "Foo 1")
	assert.Contains(t, msg, "500€")

	seen, err := seenRepo.IsSeen(context.Background(), domain.SourceGewobag, "gewobag-7")
	require.NoError(t, err)
	assert.True(t, seen)

	// Повторный прогон того же источника молчит
	require.NoError(t, uc.Execute(context.Background()))
	assert.Len(t, notifier.notified, 1)
}
