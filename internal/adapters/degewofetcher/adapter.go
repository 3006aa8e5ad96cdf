package degewofetcher

import (
	"fmt"
	"net/url"

	"github.com/Ilyass-shw/apartment-bot/internal/constants"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// DegewoFetcherAdapter скрапит openimmo-поиск degewo.de. Единственный
// источник, которому нужны сессионные cookie: они живут в SessionManager
// и запрашиваются лениво перед каждым опросом.
type DegewoFetcherAdapter struct {
	collector *colly.Collector
	searchURL string
	baseURL   string
	session   *SessionManager
}

// NewDegewoFetcherAdapter - конструктор.
func NewDegewoFetcherAdapter(searchURL, baseURL string, session *SessionManager) (*DegewoFetcherAdapter, error) {
	if session == nil {
		return nil, fmt.Errorf("degewo adapter: session manager cannot be nil")
	}

	u, err := url.Parse(searchURL)
	if err != nil {
		return nil, fmt.Errorf("degewo adapter: invalid search URL %q: %w", searchURL, err)
	}

	c := colly.NewCollector(colly.AllowedDomains(u.Hostname()), colly.AllowURLRevisit())
	c.SetRequestTimeout(constants.RequestTimeout)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  u.Hostname(),
		Parallelism: 1,
	}); err != nil {
		return nil, fmt.Errorf("degewo adapter: failed to set limit rule: %w", err)
	}

	extensions.RandomUserAgent(c)
	extensions.Referer(c)

	return &DegewoFetcherAdapter{
		collector: c,
		searchURL: searchURL,
		baseURL:   baseURL,
		session:   session,
	}, nil
}
