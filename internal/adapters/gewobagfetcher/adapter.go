package gewobagfetcher

import (
	"fmt"
	"net/url"

	"github.com/Ilyass-shw/apartment-bot/internal/constants"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// GewobagFetcherAdapter скрапит страницу предложений gewobag.de.
type GewobagFetcherAdapter struct {
	collector *colly.Collector
	searchURL string
	baseURL   string
}

// NewGewobagFetcherAdapter - конструктор. baseURL нужен для абсолютизации
// относительных ссылок в карточках.
func NewGewobagFetcherAdapter(searchURL, baseURL string) (*GewobagFetcherAdapter, error) {
	u, err := url.Parse(searchURL)
	if err != nil {
		return nil, fmt.Errorf("gewobag adapter: invalid search URL %q: %w", searchURL, err)
	}

	c := colly.NewCollector(colly.AllowedDomains(u.Hostname()), colly.AllowURLRevisit())
	c.SetRequestTimeout(constants.RequestTimeout)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  u.Hostname(),
		Parallelism: 1,
	}); err != nil {
		return nil, fmt.Errorf("gewobag adapter: failed to set limit rule: %w", err)
	}

	extensions.RandomUserAgent(c)
	extensions.Referer(c)

	return &GewobagFetcherAdapter{
		collector: c,
		searchURL: searchURL,
		baseURL:   baseURL,
	}, nil
}
