package constants

import "net/url"

const (
	DegewoSearchURL = "https://www.degewo.de/immosuche"
	DegewoBaseURL   = "https://www.degewo.de"
)

// DegewoSearchForm возвращает form-encoded payload openimmo-поиска.
// Поля повторяют запрос, который отправляет сама страница immosuche.
func DegewoSearchForm() url.Values {
	return url.Values{
		"tx_openimmo_immobilie[__referrer][@extension]":  {"Openimmo"},
		"tx_openimmo_immobilie[__referrer][@controller]": {"Immobilie"},
		"tx_openimmo_immobilie[__referrer][@action]":     {"search"},
		"tx_openimmo_immobilie[search]":                  {"search"},
		"tx_openimmo_immobilie[page]":                    {"1"},
		"tx_openimmo_immobilie[latitude]":                {""},
		"tx_openimmo_immobilie[longitude]":               {""},
		"tx_openimmo_immobilie[location]":                {""},
		"tx_openimmo_immobilie[distance]":                {"1"},
		"tx_openimmo_immobilie[nettokaltmiete]":          {"0_900"},
		"tx_openimmo_immobilie[nettokaltmiete_start]":    {""},
		"tx_openimmo_immobilie[nettokaltmiete_end]":      {""},
		"tx_openimmo_immobilie[warmmiete]":               {""},
		"tx_openimmo_immobilie[warmmiete_start]":         {""},
		"tx_openimmo_immobilie[warmmiete_end]":           {""},
		"tx_openimmo_immobilie[wohnflaeche]":             {""},
		"tx_openimmo_immobilie[wohnflaeche_start]":       {""},
		"tx_openimmo_immobilie[wohnflaeche_end]":         {""},
		"tx_openimmo_immobilie[anzahlZimmer]":            {""},
		"tx_openimmo_immobilie[anzahlZimmer_start]":      {""},
		"tx_openimmo_immobilie[anzahlZimmer_end]":        {""},
		"tx_openimmo_immobilie[ausstattung][]":           {""},
		"tx_openimmo_immobilie[wbsSozialwohnung]":        {"0"},
		"tx_openimmo_immobilie[sortBy]":                  {"immobilie_preise_warmmiete"},
		"tx_openimmo_immobilie[sortOrder]":               {"asc"},
		"tx_openimmo_immobilie[regionalerZusatz][]": {
			"charlottenburg-wilmersdorf",
			"friedrichshain-kreuzberg",
			"lichtenberg",
			"mitte",
			"neukolln",
			"pankow",
			"tempelhof-schoneberg",
		},
	}
}
