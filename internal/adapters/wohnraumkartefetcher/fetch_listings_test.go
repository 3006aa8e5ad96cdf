package wohnraumkartefetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validListResponse = `{
	"results": [
		{
			"wrk_id": "61234",
			"strasse": "Landsberger Allee 110",
			"plz": "10369",
			"ort": "Berlin",
			"titel": "2-Zimmer-Wohnung in Lichtenberg",
			"preis": "620,50",
			"groesse": "54",
			"anzahl_zimmer": "2",
			"preview_img_url": "https://www.wohnraumkarte.de/img/61234.jpg",
			"slug": "immobilie/61234-2-zimmer-wohnung"
		},
		{
			"wrk_id": "61235",
			"titel": "1-Zimmer-Apartment"
		}
	],
	"paging": {"next": false, "previous": false}
}`

func TestFetchAll_ParsesValidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "miete", r.URL.Query().Get("rentType"))
		assert.Equal(t, "Berlin", r.URL.Query().Get("city"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validListResponse))
	}))
	defer server.Close()

	adapter, err := NewWohnraumkarteFetcherAdapter(server.URL)
	require.NoError(t, err)

	listings, err := adapter.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, "61234", first.ID)
	assert.Equal(t, domain.SourceWohnraumkarte, first.SourceTag)
	assert.Equal(t, "2-Zimmer-Wohnung in Lichtenberg", first.Title)
	assert.Equal(t, "Landsberger Allee 110, 10369 Berlin", first.Address)
	assert.Equal(t, "620,50", first.Price)
	assert.Equal(t, "54", first.Size)
	assert.Equal(t, "2", first.Rooms)
	assert.Equal(t, "https://www.wohnraumkarte.de/immobilie/61234-2-zimmer-wohnung", first.Link)

	// Запись с минимальным набором полей не теряется
	second := listings[1]
	assert.Equal(t, "61235", second.ID)
	assert.Empty(t, second.Address)
	assert.Empty(t, second.Link)
}

func TestFetchAll_RejectsPayloadViolatingContract(t *testing.T) {
	// wrk_id отсутствует - схема ImmoListResponse такое не пропускает
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{"titel": "ohne id"}]}`))
	}))
	defer server.Close()

	adapter, err := NewWohnraumkarteFetcherAdapter(server.URL)
	require.NoError(t, err)

	listings, err := adapter.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract validation")
	assert.Nil(t, listings)
}

func TestFetchAll_ReturnsErrorOnServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	adapter, err := NewWohnraumkarteFetcherAdapter(server.URL)
	require.NoError(t, err)

	_, err = adapter.FetchAll(context.Background())
	require.Error(t, err)
}
