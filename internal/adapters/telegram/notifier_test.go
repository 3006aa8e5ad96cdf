package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleListing() domain.ListingRecord {
	return domain.ListingRecord{
		ID:        "7001",
		SourceTag: domain.SourceGewobag,
		Title:     "2-Zimmer-Wohnung mit Balkon",
		Address:   "Foo 1, 10115 Berlin",
		Price:     "500 €",
		Size:      "54 m²",
		Link:      "https://www.gewobag.de/mietangebote/7001/",
	}
}

func TestNotify_SendsFormattedMessageToConfiguredChat(t *testing.T) {
	var received sendMessageRequest
	var path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	notifier := NewNotifier("test-token", "-100123")
	notifier.apiBaseURL = server.URL

	require.NoError(t, notifier.Notify(context.Background(), sampleListing()))

	assert.Equal(t, "/bottest-token/sendMessage", path)
	assert.Equal(t, "-100123", received.ChatID)
	assert.Equal(t, "Markdown", received.ParseMode)

	assert.Contains(t, received.Text, "Foo 1, 10115 Berlin")
	assert.Contains(t, received.Text, "500 €")
	assert.Contains(t, received.Text, "https://www.gewobag.de/mietangebote/7001/")
}

func TestNotify_ReturnsErrorOnAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"ok": false}`))
	}))
	defer server.Close()

	notifier := NewNotifier("test-token", "-100123")
	notifier.apiBaseURL = server.URL

	err := notifier.Notify(context.Background(), sampleListing())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestBuildMessage_VariesBySource(t *testing.T) {
	apiListing := sampleListing()
	apiListing.SourceTag = domain.SourceWohnraumkarte

	// API-источник: заявка уже подана, сообщение должно это отражать
	assert.Contains(t, BuildMessage(apiListing), "Application Sent")

	portalListing := sampleListing()
	portalListing.SourceTag = domain.SourceDegewo
	portalListing.Features = []string{"Balkon", "Aufzug"}

	msg := BuildMessage(portalListing)
	assert.NotContains(t, msg, "Application Sent")
	assert.Contains(t, msg, "Balkon")
}
