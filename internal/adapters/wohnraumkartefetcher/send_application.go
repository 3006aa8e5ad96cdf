package wohnraumkartefetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Ilyass-shw/apartment-bot/internal/constants"
	"github.com/Ilyass-shw/apartment-bot/internal/contextkeys"
	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
	"github.com/Ilyass-shw/apartment-bot/internal/core/port"
)

// ApplicantProfile - данные заявителя для формы sendMailRequest.
type ApplicantProfile struct {
	Name            string
	FirstName       string
	Phone           string
	Email           string
	ApplicationText string
}

// ApplicationSender подает заявку на объявление API-источника
// (HTTP POST с form-encoded телом).
type ApplicationSender struct {
	applicationURL string
	profile        ApplicantProfile
	httpClient     *http.Client
}

func NewApplicationSender(applicationURL string, profile ApplicantProfile) *ApplicationSender {
	return &ApplicationSender{
		applicationURL: applicationURL,
		profile:        profile,
		httpClient:     &http.Client{Timeout: constants.RequestTimeout},
	}
}

// SendApplication отправляет заявку на одно объявление. Вызывается dispatcher-ом
// не более одного раза на новое объявление; политика пометки при неудаче
// решается на уровне pipeline, не здесь.
func (s *ApplicationSender) SendApplication(ctx context.Context, listing domain.ListingRecord) error {
	logger := contextkeys.LoggerFromContext(ctx)
	senderLogger := logger.WithFields(port.Fields{
		"component":  "WohnraumkarteApplicationSender",
		"listing_id": listing.ID,
		"title":      listing.Title,
	})

	form := url.Values{
		"wrkID":             {listing.ID},
		"name":              {s.profile.Name},
		"prename":           {s.profile.FirstName},
		"phone":             {s.profile.Phone},
		"email":             {s.profile.Email},
		"emailText":         {s.profile.ApplicationText},
		"currentEmployment": {constants.ApplicationEmployment},
		"incomeType":        {constants.ApplicationIncomeType},
		"monthlyNetIncome":  {constants.ApplicationNetIncome},
		"referrer":          {constants.ApplicationReferrer},
		"dataSet":           {constants.ApplicationDataSet},
	}

	senderLogger.Info("Sending application", port.Fields{"url": s.applicationURL})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.applicationURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("application sender: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		senderLogger.Error("Failed to submit application", err, nil)
		return fmt.Errorf("application sender: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("application endpoint returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
		senderLogger.Error("Received error response from application endpoint", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}

	senderLogger.Info("Application sent successfully", port.Fields{"status_code": resp.StatusCode})
	return nil
}
