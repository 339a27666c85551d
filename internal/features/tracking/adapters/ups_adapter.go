package adapter

import (
	"context"
	"encoding/base64"
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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UPS enforces a minimum effective token TTL and a safety margin so a token
// is never used right at its expiry.
const (
	upsTokenTTLFloor     = 120 * time.Second
	upsTokenSafetyMargin = 60 * time.Second
)

// UPSAdapter tracks shipments through the UPS Track API using OAuth
// client-credentials authentication with HTTP Basic auth.
type UPSAdapter struct {
	cfg    config.UPSConfig
	client *http.Client
	tokens *tokenCache
	logger *zap.Logger
}

// NewUPSAdapter creates a new UPSAdapter with the given credentials.
func NewUPSAdapter(cfg config.UPSConfig, proxySettings proxy.Settings) *UPSAdapter {
	a := &UPSAdapter{
		cfg:    cfg,
		client: httpclient.NewClient(15*time.Second, proxySettings),
		logger: logger.Named("ups"),
	}
	a.tokens = newTokenCache(a.fetchToken)
	return a
}

// Code returns the carrier code this adapter serves.
func (a *UPSAdapter) Code() domain.CarrierCode {
	return domain.CarrierUPS
}

// Name returns the carrier's display name.
func (a *UPSAdapter) Name() string {
	return "UPS"
}

// upsTokenResponse represents the UPS OAuth token response.
// UPS serializes expires_in as a string.
type upsTokenResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   json.Number `json:"expires_in"`
}

// fetchToken requests a bearer token using HTTP Basic client credentials.
func (a *UPSAdapter) fetchToken(ctx context.Context) (string, time.Time, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.APIURL+"/security/v1/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	credentials := base64.StdEncoding.EncodeToString([]byte(a.cfg.ClientID + ":" + a.cfg.ClientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("%w: ups token endpoint returned status %d", domain.ErrAuthFailed, resp.StatusCode)
	}

	var token upsTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", domain.ErrBadAuthResponse, err)
	}
	if token.AccessToken == "" {
		return "", time.Time{}, fmt.Errorf("%w: missing access_token", domain.ErrBadAuthResponse)
	}

	ttl := time.Duration(0)
	if seconds, err := token.ExpiresIn.Int64(); err == nil {
		ttl = time.Duration(seconds) * time.Second
	}
	if ttl < upsTokenTTLFloor {
		ttl = upsTokenTTLFloor
	}

	expiresAt := time.Now().Add(ttl - upsTokenSafetyMargin)
	return token.AccessToken, expiresAt, nil
}

// upsTrackResponse represents the UPS tracking response. All nested fields
// are optional; nothing here may be assumed present.
type upsTrackResponse struct {
	TrackResponse struct {
		Shipments []struct {
			Packages []upsPackage `json:"package"`
		} `json:"shipment"`
	} `json:"trackResponse"`
}

type upsPackage struct {
	TrackingNumber string         `json:"trackingNumber"`
	CurrentStatus  *upsStatus     `json:"currentStatus"`
	Activities     []upsActivity  `json:"activity"`
	DeliveryDates  []upsDelivDate `json:"deliveryDate"`
}

type upsStatus struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

type upsActivity struct {
	Date     string     `json:"date"`
	Time     string     `json:"time"`
	Status   *upsStatus `json:"status"`
	Location struct {
		Address struct {
			City          string `json:"city"`
			StateProvince string `json:"stateProvince"`
			CountryCode   string `json:"countryCode"`
		} `json:"address"`
	} `json:"location"`
}

type upsDelivDate struct {
	Type string `json:"type"`
	Date string `json:"date"`
}

// Track retrieves the unified tracking result from UPS.
func (a *UPSAdapter) Track(ctx context.Context, trackingNumber string) (*domain.TrackingResult, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	trackURL := fmt.Sprintf("%s/api/track/v1/details/%s", a.cfg.APIURL, url.PathEscape(trackingNumber))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create track request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("transId", uuid.NewString())
	req.Header.Set("transactionSrc", "parcel-tracker")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ups track endpoint returned status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var trackResp upsTrackResponse
	if err := json.NewDecoder(resp.Body).Decode(&trackResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode ups response: %w", domain.ErrUpstream, err)
	}

	return a.mapResponseToDomain(trackResp, trackingNumber)
}

// mapResponseToDomain converts a UPS response to the unified result.
func (a *UPSAdapter) mapResponseToDomain(resp upsTrackResponse, trackingNumber string) (*domain.TrackingResult, error) {
	if len(resp.TrackResponse.Shipments) == 0 || len(resp.TrackResponse.Shipments[0].Packages) == 0 {
		return nil, fmt.Errorf("%w: ups returned no packages", domain.ErrNotFound)
	}

	pkg := resp.TrackResponse.Shipments[0].Packages[0]

	// Prefer the dedicated current-status field; fall back to the most
	// recent activity (UPS lists newest first).
	current := pkg.CurrentStatus
	if current == nil && len(pkg.Activities) > 0 {
		current = pkg.Activities[0].Status
	}

	status := domain.StatusUnknown
	if current != nil {
		status = mapUPSStatus(current.Type, current.Code)
		if status == domain.StatusUnknown && (current.Type != "" || current.Code != "") {
			a.logger.Warn("Unknown UPS status encountered",
				zap.String("type", current.Type),
				zap.String("code", current.Code),
				zap.String("description", current.Description),
			)
		}
	}

	return &domain.TrackingResult{
		Carrier:           domain.CarrierUPS,
		TrackingNumber:    trackingNumber,
		Status:            status,
		EstimatedDelivery: upsEstimatedDelivery(pkg.DeliveryDates),
		Events:            parseUPSEvents(pkg.Activities),
	}, nil
}

// upsTypeTable maps the UPS status type axis to the shared enum.
var upsTypeTable = map[string]domain.TrackingStatus{
	"M":  domain.StatusPending,
	"P":  domain.StatusPickedUp,
	"I":  domain.StatusInTransit,
	"O":  domain.StatusOutForDelivery,
	"D":  domain.StatusDelivered,
	"X":  domain.StatusException,
	"RS": domain.StatusException,
}

// upsCodeTable maps UPS activity status codes to the shared enum. It is
// consulted only when the type axis does not resolve.
var upsCodeTable = map[string]domain.TrackingStatus{
	"KB": domain.StatusPending,
	"AR": domain.StatusInTransit,
	"DP": domain.StatusInTransit,
	"OT": domain.StatusInTransit,
	"OF": domain.StatusOutForDelivery,
}

// mapUPSStatus maps a UPS status to the shared enum. The type axis takes
// priority; the code table is the fallback. Unrecognized input maps to
// unknown, never to an error.
func mapUPSStatus(statusType, statusCode string) domain.TrackingStatus {
	if status, ok := upsTypeTable[strings.ToUpper(statusType)]; ok {
		return status
	}
	if status, ok := upsCodeTable[strings.ToUpper(statusCode)]; ok {
		return status
	}
	return domain.StatusUnknown
}

// formatUPSTimestamp normalizes UPS raw date (YYYYMMDD) and time (HHMMSS)
// into YYYY-MM-DDTHH:MM:SS. A malformed date is returned unmodified; a
// malformed time yields the formatted date with no time suffix.
func formatUPSTimestamp(rawDate, rawTime string) string {
	if len(rawDate) != 8 {
		return rawDate
	}
	formatted := rawDate[:4] + "-" + rawDate[4:6] + "-" + rawDate[6:8]
	if len(rawTime) != 6 {
		return formatted
	}
	return formatted + "T" + rawTime[:2] + ":" + rawTime[2:4] + ":" + rawTime[4:6]
}

// parseUPSEvents converts UPS activities in their native order. Malformed
// entries degrade to empty fields rather than failing the batch.
func parseUPSEvents(activities []upsActivity) []domain.TrackingEvent {
	events := make([]domain.TrackingEvent, 0, len(activities))
	for _, activity := range activities {
		status := domain.StatusUnknown
		description := ""
		if activity.Status != nil {
			status = mapUPSStatus(activity.Status.Type, activity.Status.Code)
			description = activity.Status.Description
		}

		address := activity.Location.Address
		events = append(events, domain.TrackingEvent{
			Timestamp:   formatUPSTimestamp(activity.Date, activity.Time),
			Status:      status,
			Location:    joinLocation(address.City, address.StateProvince, address.CountryCode),
			Description: description,
		})
	}
	return events
}

// upsEstimatedDelivery selects the delivery estimate from the ordered
// fallback chain of UPS delivery date types, nil when none is present.
func upsEstimatedDelivery(dates []upsDelivDate) *string {
	for _, wanted := range []string{"DEL", "SDD", "RDD"} {
		for _, d := range dates {
			if d.Type == wanted && d.Date != "" {
				formatted := formatUPSTimestamp(d.Date, "")
				return &formatted
			}
		}
	}
	return nil
}
