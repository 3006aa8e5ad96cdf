package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Ilyass-shw/apartment-bot/internal/core/port"
)

type SeenListingsHandler struct {
	seenRepo port.SeenListingsPort
	appName  string
}

func NewSeenListingsHandler(seenRepo port.SeenListingsPort, appName string) *SeenListingsHandler {
	return &SeenListingsHandler{
		seenRepo: seenRepo,
		appName:  appName,
	}
}

// GetHealth - простая проверка живости процесса для оркестратора
func (h *SeenListingsHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(HealthResponse{
		Status:  "ok",
		Service: h.appName,
	})
}

func (h *SeenListingsHandler) GetSeenStats(w http.ResponseWriter, r *http.Request) {

	counts, err := h.seenRepo.CountBySource(r.Context())
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("SeenStatsHandler: failed to count seen listings: %v", err))
		return
	}

	// Маппинг из доменной модели в DTO для ответа
	response := SeenStatsResponse{
		Sources: make(map[string]int64, len(counts)),
	}
	for source, count := range counts {
		response.Sources[string(source)] = count
		response.Total += count
	}

	// Отправить успешный ответ
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		_ = fmt.Errorf("SeenStatsHandler: failed to send response: %w", err)
	}

}
