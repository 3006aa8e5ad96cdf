package degewofetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Ilyass-shw/apartment-bot/internal/constants"
	"github.com/Ilyass-shw/apartment-bot/internal/contextkeys"
	"github.com/Ilyass-shw/apartment-bot/internal/core/port"
)

// SessionManager владеет сессионными cookie Degewo. Два состояния:
// Fresh (cookie есть и моложе интервала обновления) и Stale (cookie нет
// или устарели). Обновление всегда ленивое, по требованию; фонового
// обновления нет. Мьютекс удерживается на время сетевого обновления,
// поэтому конкурентные вызовы ждут один in-flight refresh вместо
// параллельных избыточных.
type SessionManager struct {
	refreshURL      string
	httpClient      *http.Client
	refreshInterval time.Duration

	mu          sync.Mutex
	cookies     string
	lastRefresh time.Time

	// nowFunc подменяется в тестах для проверки устаревания
	nowFunc func() time.Time
}

func NewSessionManager(refreshURL string) *SessionManager {
	return &SessionManager{
		refreshURL:      refreshURL,
		httpClient:      &http.Client{Timeout: constants.RequestTimeout},
		refreshInterval: constants.DegewoSessionRefreshInterval,
		nowFunc:         time.Now,
	}
}

// GetToken возвращает актуальную cookie-строку. Если сессия устарела,
// выполняется блокирующее обновление. Ошибка обновления пробрасывается
// вызывающему: адаптер трактует её как "в этом цикле опросить нельзя".
func (m *SessionManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFunc()
	if m.cookies != "" && now.Sub(m.lastRefresh) < m.refreshInterval {
		return m.cookies, nil
	}

	logger := contextkeys.LoggerFromContext(ctx)
	sessionLogger := logger.WithFields(port.Fields{"component": "DegewoSessionManager"})
	sessionLogger.Info("Session expired or not initialized, refreshing", nil)

	cookies, err := m.refresh(ctx)
	if err != nil {
		sessionLogger.Error("Failed to refresh session", err, nil)
		return "", err
	}

	m.cookies = cookies
	m.lastRefresh = m.nowFunc()
	sessionLogger.Info("Session refreshed successfully", nil)

	return m.cookies, nil
}

// refresh выполняет GET к странице поиска и собирает пары name=value
// из заголовков Set-Cookie. Вызывается только под мьютексом.
func (m *SessionManager) refresh(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.refreshURL, nil)
	if err != nil {
		return "", fmt.Errorf("session manager: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("session manager: refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	setCookies := resp.Header.Values("Set-Cookie")
	if len(setCookies) == 0 {
		return "", fmt.Errorf("session manager: no cookies received from %s", m.refreshURL)
	}

	pairs := make([]string, 0, len(setCookies))
	for _, c := range setCookies {
		pairs = append(pairs, strings.SplitN(c, ";", 2)[0])
	}

	return strings.Join(pairs, "; "), nil
}

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
