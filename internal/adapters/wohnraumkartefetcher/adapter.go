package wohnraumkartefetcher

import (
	"fmt"
	"net/url"

	"github.com/Ilyass-shw/apartment-bot/internal/constants"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// WohnraumkarteFetcherAdapter отвечает за все взаимодействия с wohnraumkarte.de:
// опрос getImmoList и подачу заявки через sendMailRequest.
type WohnraumkarteFetcherAdapter struct {
	// один родительский коллектор, который разделяет лимиты
	collector *colly.Collector
	baseURL   string
}

// NewWohnraumkarteFetcherAdapter - конструктор.
func NewWohnraumkarteFetcherAdapter(baseURL string) (*WohnraumkarteFetcherAdapter, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("wohnraumkarte adapter: invalid base URL %q: %w", baseURL, err)
	}

	c := colly.NewCollector(colly.AllowedDomains(u.Hostname()), colly.AllowURLRevisit())
	c.SetRequestTimeout(constants.RequestTimeout)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  u.Hostname(),
		Parallelism: 1,
	}); err != nil {
		return nil, fmt.Errorf("wohnraumkarte adapter: failed to set limit rule: %w", err)
	}

	extensions.RandomUserAgent(c) // На каждый запрос подставляется User-Agent реального браузера
	extensions.Referer(c)

	return &WohnraumkarteFetcherAdapter{
		collector: c,
		baseURL:   baseURL,
	}, nil
}
