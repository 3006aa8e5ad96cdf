package degewofetcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ilyass-shw/apartment-bot/internal/constants"
	"github.com/Ilyass-shw/apartment-bot/internal/contextkeys"
	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
	"github.com/Ilyass-shw/apartment-bot/internal/core/port"

	"github.com/gocolly/colly/v2"
)

func (a *DegewoFetcherAdapter) Tag() domain.SourceTag {
	return domain.SourceDegewo
}

// FetchAll отправляет form-encoded поисковый запрос с сессионными cookie и
// разбирает карточки результатов. Ошибка обновления сессии пробрасывается
// как транспортная: в этом цикле источник не опрашивается. Карточки без
// адреса, заголовка или цены отбрасываются.
func (a *DegewoFetcherAdapter) FetchAll(ctx context.Context) ([]domain.ListingRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "DegewoFetcherAdapter(FetchAll)"})

	cookies, err := a.session.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("degewo adapter: cannot obtain session: %w", err)
	}

	collector := a.collector.Clone()

	var listings []domain.ListingRecord
	var responseErr error
	dropped := 0

	collector.OnRequest(func(r *colly.Request) {
		fetchLogger.Debug("Making search request", port.Fields{"url": r.URL.String()})

		r.Headers.Set("Content-Type", "application/x-www-form-urlencoded")
		r.Headers.Set("Cookie", cookies)
		r.Headers.Set("Referer", a.searchURL)
		r.Headers.Set("Origin", a.baseURL)
	})

	collector.OnHTML(".article-list__item--immosearch", func(e *colly.HTMLElement) {
		address := strings.TrimSpace(e.ChildText(".article__meta"))
		title := strings.TrimSpace(e.ChildText(".article__title"))
		rent := strings.TrimSpace(e.ChildText(".article__price-tag .price"))

		if address == "" || title == "" || rent == "" {
			dropped++
			return
		}

		id := e.Attr("id")
		if id == "" {
			id = domain.ContentHashID(domain.SourceDegewo, address, title, rent)
		}

		listing := domain.ListingRecord{
			ID:        id,
			SourceTag: domain.SourceDegewo,
			Title:     title,
			Address:   address,
			Price:     rent,
			Link:      a.absoluteLink(e.ChildAttr("a", "href")),
			ImageURL:  firstImageURL(e),
		}

		// Площадь, комнаты и дата въезда различимы только по иконке свойства
		e.ForEach(".article__properties-item", func(_ int, prop *colly.HTMLElement) {
			text := strings.TrimSpace(prop.ChildText(".text"))
			icon := prop.ChildAttr("svg use", "xlink:href")
			if icon == "" {
				icon = prop.ChildAttr("svg use", "href")
			}

			switch icon {
			case "#i-squares":
				listing.Size = text
			case "#i-room":
				listing.Rooms = text
			case "#i-calendar2":
				listing.AvailableFrom = text
			}
		})

		e.ForEach(".article__tags-item", func(_ int, tag *colly.HTMLElement) {
			if feature := strings.TrimSpace(tag.Text); feature != "" {
				listing.Features = append(listing.Features, feature)
			}
		})

		listings = append(listings, listing)
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchLogger.Error("Failed to fetch search results", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		responseErr = fmt.Errorf("degewo adapter: request to %s failed with status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	body := []byte(constants.DegewoSearchForm().Encode())
	if postErr := collector.PostRaw(a.searchURL, body); postErr != nil {
		fetchLogger.Error("Failed to post search request", postErr, port.Fields{"url": a.searchURL})
		return nil, fmt.Errorf("degewo adapter: failed to post search request: %w", postErr)
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}

	fetchLogger.Info("Finished parsing search results", port.Fields{
		"listings_parsed": len(listings),
		"dropped":         dropped,
	})

	return listings, nil
}

func (a *DegewoFetcherAdapter) absoluteLink(link string) string {
	if link == "" || strings.HasPrefix(link, "http") {
		return link
	}
	return a.baseURL + link
}

// firstImageURL берет src, а при lazy-loading - первый URL из data-srcset.
func firstImageURL(e *colly.HTMLElement) string {
	if src := e.ChildAttr("img", "src"); src != "" {
		return src
	}
	if srcset := e.ChildAttr("img", "data-srcset"); srcset != "" {
		return strings.Fields(srcset)[0]
	}
	return ""
}
