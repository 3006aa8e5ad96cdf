package gewobagfetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Ilyass-shw/apartment-bot/internal/constants"
	"github.com/Ilyass-shw/apartment-bot/internal/contextkeys"
	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
	"github.com/Ilyass-shw/apartment-bot/internal/core/port"

	"github.com/gocolly/colly/v2"
)

func (a *GewobagFetcherAdapter) Tag() domain.SourceTag {
	return domain.SourceGewobag
}

// FetchAll скрапит отфильтрованную страницу предложений и возвращает
// нормализованные объявления. Карточки без обязательных полей
// (адрес, заголовок, площадь, аренда) молча отбрасываются - частичная
// запись хуже отсутствующей. Карточка без атрибута id получает
// детерминированный content-hash идентификатор.
func (a *GewobagFetcherAdapter) FetchAll(ctx context.Context) ([]domain.ListingRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "GewobagFetcherAdapter(FetchAll)"})

	collector := a.collector.Clone()

	var listings []domain.ListingRecord
	var responseErr error
	dropped := 0

	targetURL, err := a.buildSearchURL()
	if err != nil {
		return nil, fmt.Errorf("gewobag adapter: failed to build search URL: %w", err)
	}

	collector.OnRequest(func(r *colly.Request) {
		fetchLogger.Debug("Making request to fetch offers page", port.Fields{
			"url": r.URL.String(),
		})
	})

	collector.OnHTML(".angebot-big-box", func(e *colly.HTMLElement) {
		address := strings.TrimSpace(e.ChildText(".angebot-address address"))
		title := strings.TrimSpace(e.ChildText(".angebot-title"))
		size := strings.TrimSpace(e.ChildText(".angebot-area td"))
		rent := strings.TrimSpace(e.ChildText(".angebot-kosten td"))

		// Минимальный набор полей; без него карточка не эмитится
		if address == "" || title == "" || size == "" || rent == "" {
			dropped++
			return
		}

		id := e.Attr("id")
		if id == "" {
			id = domain.ContentHashID(domain.SourceGewobag, address, title, rent)
		}

		link := e.ChildAttr(".read-more-link", "href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = a.baseURL + link
		}

		listings = append(listings, domain.ListingRecord{
			ID:        id,
			SourceTag: domain.SourceGewobag,
			Title:     title,
			Address:   address,
			Price:     rent,
			Size:      size,
			Link:      link,
			ImageURL:  e.ChildAttr(".slider-element img", "src"),
		})
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchLogger.Error("Failed to fetch offers page", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		responseErr = fmt.Errorf("gewobag adapter: request to %s failed with status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	if visitErr := collector.Visit(targetURL); visitErr != nil {
		fetchLogger.Error("Failed to initiate visit for offers page", visitErr, port.Fields{"url": targetURL})
		return nil, fmt.Errorf("gewobag adapter: failed to visit URL %s: %w", targetURL, visitErr)
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}

	fetchLogger.Info("Finished parsing offers page", port.Fields{
		"listings_parsed": len(listings),
		"dropped":         dropped,
	})

	return listings, nil
}

func (a *GewobagFetcherAdapter) buildSearchURL() (string, error) {
	u, err := url.Parse(a.searchURL)
	if err != nil {
		return "", err
	}

	u.RawQuery = constants.GewobagSearchQuery().Encode()
	return u.String(), nil
}
