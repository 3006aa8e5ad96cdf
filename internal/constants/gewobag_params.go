package constants

import "net/url"

const (
	GewobagSearchURL = "https://www.gewobag.de/fuer-mietinteressentinnen/mietangebote/"
	GewobagBaseURL   = "https://www.gewobag.de"
)

// GewobagSearchQuery возвращает параметры фильтра страницы предложений:
// районы, тип объекта, потолок тёплой аренды и диапазон площади.
func GewobagSearchQuery() url.Values {
	return url.Values{
		"bezirke[]": {
			"charlottenburg-wilmersdorf-charlottenburg",
			"friedrichshain-kreuzberg",
			"friedrichshain-kreuzberg-friedrichshain",
			"friedrichshain-kreuzberg-kreuzberg",
			"mitte",
			"mitte-gesundbrunnen",
			"mitte-moabit",
			"mitte-wedding",
			"neukoelln",
			"neukoelln-britz",
			"neukoelln-buckow",
			"neukoelln-neukoelln",
			"neukoelln-rudow",
			"pankow",
			"pankow-pankow",
			"pankow-prenzlauer-berg",
		},
		"objekttyp[]":       {"wohnung"},
		"gesamtmiete_von":   {""},
		"gesamtmiete_bis":   {"1100"},
		"gesamtflaeche_von": {"34"},
		"gesamtflaeche_bis": {"80"},
		"zimmer_von":        {""},
		"zimmer_bis":        {""},
		"keinwbs":           {"1"},
		"sort-by":           {""},
	}
}
