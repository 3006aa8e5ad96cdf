package wohnraumkartefetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Ilyass-shw/apartment-bot/internal/constants"
	"github.com/Ilyass-shw/apartment-bot/internal/contextkeys"
	"github.com/Ilyass-shw/apartment-bot/internal/contracts"
	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
	"github.com/Ilyass-shw/apartment-bot/internal/core/port"

	"github.com/gocolly/colly/v2"
)

// Структуры для разбора ответа getImmoList
type apiResponse struct {
	Results []apiApartment `json:"results"`
	Paging  apiPaging      `json:"paging"`
}

type apiApartment struct {
	WrkID         string `json:"wrk_id"`
	Strasse       string `json:"strasse"`
	Plz           string `json:"plz"`
	Ort           string `json:"ort"`
	Titel         string `json:"titel"`
	Preis         string `json:"preis"`
	Groesse       string `json:"groesse"`
	AnzahlZimmer  string `json:"anzahl_zimmer"`
	PreviewImgURL string `json:"preview_img_url"`
	Slug          string `json:"slug"`
}

type apiPaging struct {
	Next     bool `json:"next"`
	Previous bool `json:"previous"`
}

func (a *WohnraumkarteFetcherAdapter) Tag() domain.SourceTag {
	return domain.SourceWohnraumkarte
}

// FetchAll опрашивает getImmoList с фиксированными параметрами поиска и
// возвращает полностью материализованный срез объявлений. Тело ответа сначала
// проверяется по схеме ImmoListResponse, затем разбирается. Ошибка транспорта
// или схемы возвращается вызывающему; pipeline превращает её в пустой цикл.
func (a *WohnraumkarteFetcherAdapter) FetchAll(ctx context.Context) ([]domain.ListingRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "WohnraumkarteFetcherAdapter(FetchAll)"})

	// Одноразовый клон для этого запроса: наследует лимиты,
	// но имеет свои собственные обработчики
	collector := a.collector.Clone()

	var listings []domain.ListingRecord
	var responseErr error

	targetURL, err := a.buildSearchURL()
	if err != nil {
		return nil, fmt.Errorf("wohnraumkarte adapter: failed to build search URL: %w", err)
	}

	collector.OnRequest(func(r *colly.Request) {
		fetchLogger.Debug("Making request to fetch listings", port.Fields{
			"url": r.URL.String(),
		})
	})

	collector.OnResponse(func(r *colly.Response) {
		if err := contracts.ValidatePayload("ImmoListResponse", "1.0.0", r.Body); err != nil {
			responseErr = fmt.Errorf("wohnraumkarte adapter: response failed contract validation: %w", err)
			return
		}

		var data apiResponse
		if jsonErr := json.Unmarshal(r.Body, &data); jsonErr != nil {
			responseErr = fmt.Errorf("wohnraumkarte adapter: failed to unmarshal response: %w", jsonErr)
			return
		}

		for _, apt := range data.Results {
			listings = append(listings, toDomainRecord(apt))
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchLogger.Error("Failed to fetch listings page", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		responseErr = fmt.Errorf("wohnraumkarte adapter: request to %s failed with status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	if visitErr := collector.Visit(targetURL); visitErr != nil {
		fetchLogger.Error("Failed to initiate visit for fetching listings", visitErr, port.Fields{"url": targetURL})
		return nil, fmt.Errorf("wohnraumkarte adapter: failed to visit URL %s: %w", targetURL, visitErr)
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}

	fetchLogger.Info("Finished fetching listings", port.Fields{
		"url":              targetURL,
		"listings_fetched": len(listings),
	})

	return listings, nil
}

func (a *WohnraumkarteFetcherAdapter) buildSearchURL() (string, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return "", err
	}

	u.RawQuery = constants.WohnraumkarteSearchQuery().Encode()
	return u.String(), nil
}
