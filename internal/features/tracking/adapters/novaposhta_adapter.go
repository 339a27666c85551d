package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"parcel-tracker/internal/core/config"
	"parcel-tracker/internal/core/httpclient"
	"parcel-tracker/internal/core/logger"
	"parcel-tracker/internal/core/proxy"
	"parcel-tracker/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// NovaPoshtaAdapter tracks shipments through the Nova Poshta JSON API using
// a static API key embedded in each request body.
type NovaPoshtaAdapter struct {
	cfg    config.NovaPoshtaConfig
	client *http.Client
	logger *zap.Logger
}

// NewNovaPoshtaAdapter creates a new NovaPoshtaAdapter with the given API key.
func NewNovaPoshtaAdapter(cfg config.NovaPoshtaConfig, proxySettings proxy.Settings) *NovaPoshtaAdapter {
	return &NovaPoshtaAdapter{
		cfg:    cfg,
		client: httpclient.NewClient(15*time.Second, proxySettings),
		logger: logger.Named("nova_poshta"),
	}
}

// Code returns the carrier code this adapter serves.
func (a *NovaPoshtaAdapter) Code() domain.CarrierCode {
	return domain.CarrierNovaPoshta
}

// Name returns the carrier's display name.
func (a *NovaPoshtaAdapter) Name() string {
	return "Nova Poshta"
}

// novaPoshtaRequest is the body of a Nova Poshta tracking query.
type novaPoshtaRequest struct {
	APIKey           string                 `json:"apiKey"`
	ModelName        string                 `json:"modelName"`
	CalledMethod     string                 `json:"calledMethod"`
	MethodProperties novaPoshtaRequestProps `json:"methodProperties"`
}

type novaPoshtaRequestProps struct {
	Documents []novaPoshtaDocumentRef `json:"Documents"`
}

type novaPoshtaDocumentRef struct {
	DocumentNumber string `json:"DocumentNumber"`
}

// novaPoshtaResponse represents the Nova Poshta envelope. StatusCode arrives
// as a string; every field is optional.
type novaPoshtaResponse struct {
	Success bool                 `json:"success"`
	Data    []novaPoshtaDocument `json:"data"`
	Errors  []string             `json:"errors"`
}

type novaPoshtaDocument struct {
	Number                string `json:"Number"`
	Status                string `json:"Status"`
	StatusCode            string `json:"StatusCode"`
	CityRecipient         string `json:"CityRecipient"`
	WarehouseRecipient    string `json:"WarehouseRecipient"`
	ScheduledDeliveryDate string `json:"ScheduledDeliveryDate"`
	ActualDeliveryDate    string `json:"ActualDeliveryDate"`
	TrackingUpdateDate    string `json:"TrackingUpdateDate"`
	DateScan              string `json:"DateScan"`
	DateCreated           string `json:"DateCreated"`
}

// Track retrieves the unified tracking result from Nova Poshta.
func (a *NovaPoshtaAdapter) Track(ctx context.Context, trackingNumber string) (*domain.TrackingResult, error) {
	body, err := json.Marshal(novaPoshtaRequest{
		APIKey:       a.cfg.APIKey,
		ModelName:    "TrackingDocument",
		CalledMethod: "getStatusDocuments",
		MethodProperties: novaPoshtaRequestProps{
			Documents: []novaPoshtaDocumentRef{{DocumentNumber: trackingNumber}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal track request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.APIURL+"/v2.0/json/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create track request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: nova poshta endpoint returned status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var trackResp novaPoshtaResponse
	if err := json.NewDecoder(resp.Body).Decode(&trackResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode nova poshta response: %w", domain.ErrUpstream, err)
	}

	if !trackResp.Success {
		return nil, fmt.Errorf("%w: nova poshta error: %s", domain.ErrUpstream, strings.Join(trackResp.Errors, "; "))
	}
	if len(trackResp.Data) == 0 {
		return nil, fmt.Errorf("%w: nova poshta returned no documents", domain.ErrNotFound)
	}

	return a.mapDocumentToDomain(trackResp.Data[0], trackingNumber), nil
}

// mapDocumentToDomain converts a Nova Poshta status document to the unified
// result. The API returns one snapshot per document, so exactly one event is
// synthesized from it.
func (a *NovaPoshtaAdapter) mapDocumentToDomain(doc novaPoshtaDocument, trackingNumber string) *domain.TrackingResult {
	status := mapNovaPoshtaStatus(doc.StatusCode)
	if status == domain.StatusUnknown && doc.StatusCode != "" {
		a.logger.Warn("Unknown Nova Poshta status code encountered",
			zap.String("code", doc.StatusCode),
			zap.String("status", doc.Status),
		)
	}

	event := domain.TrackingEvent{
		Timestamp:   firstNonEmpty(doc.TrackingUpdateDate, doc.DateScan, doc.DateCreated),
		Status:      status,
		Location:    joinLocation(doc.CityRecipient, doc.WarehouseRecipient),
		Description: doc.Status,
	}

	return &domain.TrackingResult{
		Carrier:           domain.CarrierNovaPoshta,
		TrackingNumber:    trackingNumber,
		Status:            status,
		EstimatedDelivery: novaPoshtaEstimatedDelivery(doc),
		Events:            []domain.TrackingEvent{event},
	}
}

// mapNovaPoshtaStatus maps a numeric Nova Poshta status code to the shared
// enum using ordered checks: distinguished exact values first, then
// inclusive ranges. The first matching rule wins; anything else is unknown.
func mapNovaPoshtaStatus(rawCode string) domain.TrackingStatus {
	code, err := strconv.Atoi(strings.TrimSpace(rawCode))
	if err != nil {
		return domain.StatusUnknown
	}

	switch {
	case code == 1:
		return domain.StatusPending
	case code == 2 || code == 3:
		// Deleted or not found on the carrier side.
		return domain.StatusUnknown
	case code == 4 || code == 41:
		return domain.StatusPickedUp
	case code == 101:
		return domain.StatusOutForDelivery
	case code >= 5 && code <= 8:
		return domain.StatusInTransit
	case code >= 9 && code <= 11:
		return domain.StatusDelivered
	case code >= 102 && code <= 112:
		return domain.StatusException
	default:
		return domain.StatusUnknown
	}
}

// novaPoshtaEstimatedDelivery selects the delivery estimate from the ordered
// fallback chain of optional document fields, nil when none is present.
func novaPoshtaEstimatedDelivery(doc novaPoshtaDocument) *string {
	if estimate := firstNonEmpty(doc.ScheduledDeliveryDate, doc.ActualDeliveryDate); estimate != "" {
		return &estimate
	}
	return nil
}
