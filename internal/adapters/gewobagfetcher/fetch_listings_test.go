package gewobagfetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offersPage = `<!DOCTYPE html>
<html><body>
<div class="angebot-big-box" id="angebot-7001">
  <div class="angebot-address"><address>Foo 1, 10115 Berlin</address></div>
  <h3 class="angebot-title">2-Zimmer-Wohnung mit Balkon</h3>
  <table class="angebot-area"><tr><td>54,2 m²</td></tr></table>
  <table class="angebot-kosten"><tr><td>500 €</td></tr></table>
  <a class="read-more-link" href="/mietangebote/7001/">Mehr erfahren</a>
  <div class="slider-element"><img src="https://www.gewobag.de/img/7001.jpg"></div>
</div>
<div class="angebot-big-box">
  <div class="angebot-address"><address>Bar 2, 13089 Berlin</address></div>
  <h3 class="angebot-title">3-Zimmer-Wohnung</h3>
  <table class="angebot-area"><tr><td>72 m²</td></tr></table>
  <table class="angebot-kosten"><tr><td>890 €</td></tr></table>
</div>
<div class="angebot-big-box" id="angebot-7002">
  <div class="angebot-address"><address>Kaputt 3, 12043 Berlin</address></div>
  <h3 class="angebot-title">Wohnung ohne Kostenangabe</h3>
  <table class="angebot-area"><tr><td>60 m²</td></tr></table>
</div>
</body></html>`

func newTestServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}))
}

func TestFetchAll_ParsesOfferCards(t *testing.T) {
	server := newTestServer(t, offersPage)
	defer server.Close()

	adapter, err := NewGewobagFetcherAdapter(server.URL, server.URL)
	require.NoError(t, err)

	listings, err := adapter.FetchAll(context.Background())
	require.NoError(t, err)

	// Третья карточка без аренды отбрасывается
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, "angebot-7001", first.ID)
	assert.Equal(t, domain.SourceGewobag, first.SourceTag)
	assert.Equal(t, "Foo 1, 10115 Berlin", first.Address)
	assert.Equal(t, "2-Zimmer-Wohnung mit Balkon", first.Title)
	assert.Equal(t, "54,2 m²", first.Size)
	assert.Equal(t, "500 €", first.Price)
	assert.Equal(t, server.URL+"/mietangebote/7001/", first.Link)
	assert.Equal(t, "https://www.gewobag.de/img/7001.jpg", first.ImageURL)
}

func TestFetchAll_CardWithoutIDGetsStableContentHash(t *testing.T) {
	server := newTestServer(t, offersPage)
	defer server.Close()

	adapter, err := NewGewobagFetcherAdapter(server.URL, server.URL)
	require.NoError(t, err)

	firstRun, err := adapter.FetchAll(context.Background())
	require.NoError(t, err)
	secondRun, err := adapter.FetchAll(context.Background())
	require.NoError(t, err)

	require.Len(t, firstRun, 2)
	require.Len(t, secondRun, 2)

	// Вторая карточка не имеет id в разметке
	hashed := firstRun[1]
	assert.True(t, strings.HasPrefix(hashed.ID, "gewobag-"), "fallback ID must carry the source prefix, got %q", hashed.ID)

	// Идентификатор детерминирован между опросами - иначе сломается seen-set
	assert.Equal(t, hashed.ID, secondRun[1].ID)
	assert.NotEqual(t, firstRun[0].ID, hashed.ID)
}

func TestFetchAll_ReturnsErrorOnServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter, err := NewGewobagFetcherAdapter(server.URL, server.URL)
	require.NoError(t, err)

	_, err = adapter.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestFetchAll_SendsConfiguredFilterQuery(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	adapter, err := NewGewobagFetcherAdapter(server.URL, server.URL)
	require.NoError(t, err)

	_, err = adapter.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"1100"}, query["gesamtmiete_bis"])
	assert.Equal(t, []string{"1"}, query["keinwbs"])
	assert.NotEmpty(t, query["bezirke[]"])
}
