package rest

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// SeenStatsResponse - счётчики обработанных объявлений по источникам
type SeenStatsResponse struct {
	Sources map[string]int64 `json:"sources"`
	Total   int64            `json:"total"`
}
