package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayload_AcceptsValidImmoListResponse(t *testing.T) {
	body := []byte(`{
		"results": [
			{"wrk_id": "61234", "titel": "2-Zimmer-Wohnung", "preis": "620,50"}
		],
		"paging": {"next": false, "previous": false}
	}`)

	assert.NoError(t, ValidatePayload("ImmoListResponse", "1.0.0", body))
}

func TestValidatePayload_RejectsMissingRequiredFields(t *testing.T) {
	// Без wrk_id объявление не идентифицируемо
	body := []byte(`{"results": [{"titel": "ohne id"}]}`)

	err := ValidatePayload("ImmoListResponse", "1.0.0", body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidatePayload_RejectsMalformedJSON(t *testing.T) {
	err := ValidatePayload("ImmoListResponse", "1.0.0", []byte(`<html>not json</html>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid JSON")
}

func TestValidatePayload_UnknownSchema(t *testing.T) {
	err := ValidatePayload("NoSuchPayload", "1.0.0", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
