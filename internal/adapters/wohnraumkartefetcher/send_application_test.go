package wohnraumkartefetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() ApplicantProfile {
	return ApplicantProfile{
		Name:            "Mustermann",
		FirstName:       "Max",
		Phone:           "+49301234567",
		Email:           "max@example.com",
		ApplicationText: "Sehr geehrte Damen und Herren, ...",
	}
}

func TestSendApplication_SubmitsFormWithApplicantData(t *testing.T) {
	var received url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		received = r.PostForm
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewApplicationSender(server.URL, testProfile())

	err := sender.SendApplication(context.Background(), domain.ListingRecord{ID: "61234", Title: "2-Zimmer-Wohnung"})
	require.NoError(t, err)

	assert.Equal(t, "61234", received.Get("wrkID"))
	assert.Equal(t, "Mustermann", received.Get("name"))
	assert.Equal(t, "Max", received.Get("prename"))
	assert.Equal(t, "+49301234567", received.Get("phone"))
	assert.Equal(t, "max@example.com", received.Get("email"))
	assert.Equal(t, "Sehr geehrte Damen und Herren, ...", received.Get("emailText"))

	// Фиксированные коды формы уходят как есть
	assert.Equal(t, "angestellte", received.Get("currentEmployment"))
	assert.Equal(t, "1", received.Get("incomeType"))
	assert.Equal(t, "M_3", received.Get("monthlyNetIncome"))
	assert.Equal(t, "DeuWo", received.Get("referrer"))
	assert.Equal(t, "deuwo", received.Get("dataSet"))
}

func TestSendApplication_ReturnsErrorOnNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("blocked"))
	}))
	defer server.Close()

	sender := NewApplicationSender(server.URL, testProfile())

	err := sender.SendApplication(context.Background(), domain.ListingRecord{ID: "61234"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
