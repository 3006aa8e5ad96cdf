package constants

import "net/url"

const (
	WohnraumkarteAPIURL         = "https://www.wohnraumkarte.de/api/getImmoList"
	WohnraumkarteApplicationURL = "https://www.wohnraumkarte.de/Api/sendMailRequest"
	WohnraumkarteListingBaseURL = "https://www.wohnraumkarte.de/"
)

// Фиксированные коды для формы заявки (sendMailRequest).
const (
	ApplicationEmployment = "angestellte"
	ApplicationIncomeType = "1"
	ApplicationNetIncome  = "M_3"
	ApplicationReferrer   = "DeuWo"
	ApplicationDataSet    = "deuwo"
)

// WohnraumkarteSearchQuery возвращает параметры поискового запроса к API.
// Это данные фильтра, не логика; значения соответствуют целевому поиску в Берлине.
func WohnraumkarteSearchQuery() url.Values {
	return url.Values{
		"rentType":                {"miete"},
		"city":                    {"Berlin"},
		"perimeter":               {"7"},
		"immoType":                {"wohnung"},
		"priceMax":                {"720"},
		"sizeMin":                 {"50"},
		"minRooms":                {"Beliebig"},
		"floor":                   {"Beliebig"},
		"bathtub":                 {"0"},
		"bathwindow":              {"0"},
		"bathshower":              {"0"},
		"furnished":               {"0"},
		"kitchenEBK":              {"0"},
		"toiletSeparate":          {"0"},
		"disabilityAccess":        {"egal"},
		"seniorFriendly":          {"0"},
		"balcony":                 {"egal"},
		"subsidizedHousingPermit": {"egal"},
		"limit":                   {"15"},
		"offset":                  {"0"},
		"orderBy":                 {"dist_asc"},
		"dataSet":                 {"deuwo"},
	}
}
