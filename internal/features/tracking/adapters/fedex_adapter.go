package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parcel-tracker/internal/core/config"
	"parcel-tracker/internal/core/httpclient"
	"parcel-tracker/internal/core/logger"
	"parcel-tracker/internal/core/proxy"
	"parcel-tracker/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// FedExAdapter tracks shipments through the FedEx Track API using OAuth
// client-credentials authentication.
type FedExAdapter struct {
	cfg    config.FedExConfig
	client *http.Client
	tokens *tokenCache
	logger *zap.Logger
}

// NewFedExAdapter creates a new FedExAdapter with the given credentials.
func NewFedExAdapter(cfg config.FedExConfig, proxySettings proxy.Settings) *FedExAdapter {
	a := &FedExAdapter{
		cfg:    cfg,
		client: httpclient.NewClient(15*time.Second, proxySettings),
		logger: logger.Named("fedex"),
	}
	a.tokens = newTokenCache(a.fetchToken)
	return a
}

// Code returns the carrier code this adapter serves.
func (a *FedExAdapter) Code() domain.CarrierCode {
	return domain.CarrierFedEx
}

// Name returns the carrier's display name.
func (a *FedExAdapter) Name() string {
	return "FedEx"
}

// fedexTokenResponse represents the FedEx OAuth token response.
type fedexTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// fetchToken requests a bearer token with the client credentials embedded in
// the form body. FedEx tokens are valid for the declared TTL; a 60s margin
// keeps a token from expiring mid-flight.
func (a *FedExAdapter) fetchToken(ctx context.Context) (string, time.Time, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.cfg.ClientID)
	form.Set("client_secret", a.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.APIURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("%w: fedex token endpoint returned status %d", domain.ErrAuthFailed, resp.StatusCode)
	}

	var token fedexTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", domain.ErrBadAuthResponse, err)
	}
	if token.AccessToken == "" {
		return "", time.Time{}, fmt.Errorf("%w: missing access_token", domain.ErrBadAuthResponse)
	}

	expiresAt := time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - 60*time.Second)
	return token.AccessToken, expiresAt, nil
}

// fedexTrackRequest is the body of a FedEx tracking query.
type fedexTrackRequest struct {
	IncludeDetailedScans bool                `json:"includeDetailedScans"`
	TrackingInfo         []fedexTrackingInfo `json:"trackingInfo"`
}

type fedexTrackingInfo struct {
	TrackingNumberInfo fedexTrackingNumberInfo `json:"trackingNumberInfo"`
}

type fedexTrackingNumberInfo struct {
	TrackingNumber string `json:"trackingNumber"`
}

// fedexTrackResponse represents the FedEx tracking response. All nested
// fields are optional; nothing here may be assumed present.
type fedexTrackResponse struct {
	Output struct {
		CompleteTrackResults []struct {
			TrackingNumber string             `json:"trackingNumber"`
			TrackResults   []fedexTrackResult `json:"trackResults"`
		} `json:"completeTrackResults"`
	} `json:"output"`
}

type fedexTrackResult struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	LatestStatusDetail *struct {
		DerivedCode    string `json:"derivedCode"`
		StatusByLocale string `json:"statusByLocale"`
		Description    string `json:"description"`
	} `json:"latestStatusDetail"`
	DateAndTimes []struct {
		Type     string `json:"type"`
		DateTime string `json:"dateTime"`
	} `json:"dateAndTimes"`
	EstimatedDeliveryTimeWindow *struct {
		Window struct {
			Begins string `json:"begins"`
			Ends   string `json:"ends"`
		} `json:"window"`
	} `json:"estimatedDeliveryTimeWindow"`
	StandardTransitTimeWindow *struct {
		Window struct {
			Begins string `json:"begins"`
			Ends   string `json:"ends"`
		} `json:"window"`
	} `json:"standardTransitTimeWindow"`
	ScanEvents []fedexScanEvent `json:"scanEvents"`
}

type fedexScanEvent struct {
	Date              string `json:"date"`
	EventDescription  string `json:"eventDescription"`
	DerivedStatusCode string `json:"derivedStatusCode"`
	ScanLocation      struct {
		City                string `json:"city"`
		StateOrProvinceCode string `json:"stateOrProvinceCode"`
		CountryCode         string `json:"countryCode"`
	} `json:"scanLocation"`
}

// Track retrieves the unified tracking result from FedEx.
func (a *FedExAdapter) Track(ctx context.Context, trackingNumber string) (*domain.TrackingResult, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(fedexTrackRequest{
		IncludeDetailedScans: true,
		TrackingInfo: []fedexTrackingInfo{
			{TrackingNumberInfo: fedexTrackingNumberInfo{TrackingNumber: trackingNumber}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal track request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.APIURL+"/track/v1/trackingnumbers", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create track request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fedex track endpoint returned status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var trackResp fedexTrackResponse
	if err := json.NewDecoder(resp.Body).Decode(&trackResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode fedex response: %w", domain.ErrUpstream, err)
	}

	return a.mapResponseToDomain(trackResp, trackingNumber)
}

// mapResponseToDomain converts a FedEx response to the unified result.
func (a *FedExAdapter) mapResponseToDomain(resp fedexTrackResponse, trackingNumber string) (*domain.TrackingResult, error) {
	if len(resp.Output.CompleteTrackResults) == 0 || len(resp.Output.CompleteTrackResults[0].TrackResults) == 0 {
		return nil, fmt.Errorf("%w: fedex returned no track results", domain.ErrNotFound)
	}

	result := resp.Output.CompleteTrackResults[0].TrackResults[0]
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, result.Error.Message)
	}

	// Prefer the dedicated current-status field; fall back to the most
	// recent scan event (FedEx lists newest first).
	statusCode := ""
	if result.LatestStatusDetail != nil {
		statusCode = result.LatestStatusDetail.DerivedCode
	}
	if statusCode == "" && len(result.ScanEvents) > 0 {
		statusCode = result.ScanEvents[0].DerivedStatusCode
	}

	status := mapFedExStatus(statusCode)
	if status == domain.StatusUnknown && statusCode != "" {
		a.logger.Warn("Unknown FedEx status code encountered",
			zap.String("code", statusCode),
		)
	}

	return &domain.TrackingResult{
		Carrier:           domain.CarrierFedEx,
		TrackingNumber:    trackingNumber,
		Status:            status,
		EstimatedDelivery: fedexEstimatedDelivery(result),
		Events:            parseFedExEvents(result.ScanEvents),
	}, nil
}

// mapFedExStatus maps a FedEx derived status code to the shared enum.
// Unrecognized codes map to unknown, never to an error.
func mapFedExStatus(code string) domain.TrackingStatus {
	switch strings.ToUpper(code) {
	case "OC", "IN":
		return domain.StatusPending
	case "PU":
		return domain.StatusPickedUp
	case "IT", "DP", "AR", "AF", "HL":
		return domain.StatusInTransit
	case "OD":
		return domain.StatusOutForDelivery
	case "DL":
		return domain.StatusDelivered
	case "DE", "CA", "RS", "SE":
		return domain.StatusException
	default:
		return domain.StatusUnknown
	}
}

// parseFedExEvents converts FedEx scan events in their native order.
// Timestamps are carried verbatim; FedEx already supplies ISO-8601 strings.
func parseFedExEvents(scanEvents []fedexScanEvent) []domain.TrackingEvent {
	events := make([]domain.TrackingEvent, 0, len(scanEvents))
	for _, scan := range scanEvents {
		events = append(events, domain.TrackingEvent{
			Timestamp:   scan.Date,
			Status:      mapFedExStatus(scan.DerivedStatusCode),
			Location:    joinLocation(scan.ScanLocation.City, scan.ScanLocation.StateOrProvinceCode, scan.ScanLocation.CountryCode),
			Description: scan.EventDescription,
		})
	}
	return events
}

// fedexEstimatedDelivery selects the delivery estimate from the ordered
// fallback chain of optional FedEx fields, nil when none is present.
func fedexEstimatedDelivery(result fedexTrackResult) *string {
	if result.EstimatedDeliveryTimeWindow != nil && result.EstimatedDeliveryTimeWindow.Window.Ends != "" {
		return &result.EstimatedDeliveryTimeWindow.Window.Ends
	}
	if result.StandardTransitTimeWindow != nil && result.StandardTransitTimeWindow.Window.Ends != "" {
		return &result.StandardTransitTimeWindow.Window.Ends
	}
	for _, dt := range result.DateAndTimes {
		if dt.Type == "ESTIMATED_DELIVERY" && dt.DateTime != "" {
			return &dt.DateTime
		}
	}
	return nil
}
