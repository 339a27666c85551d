package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"parcel-tracker/internal/core/config"
	"parcel-tracker/internal/core/proxy"
	"parcel-tracker/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFedExTestServer serves a token endpoint and a track endpoint returning
// the given JSON body.
func newFedExTestServer(t *testing.T, trackJSON string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
			assert.Equal(t, "fedex-id", r.PostForm.Get("client_id"))
			assert.Equal(t, "fedex-secret", r.PostForm.Get("client_secret"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"fedex-token","expires_in":3599}`))
		case "/track/v1/trackingnumbers":
			assert.Equal(t, "Bearer fedex-token", r.Header.Get("Authorization"))
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, true, body["includeDetailedScans"])
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(trackJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newFedExTestAdapter(url string) *FedExAdapter {
	return NewFedExAdapter(config.FedExConfig{
		APIURL:       url,
		ClientID:     "fedex-id",
		ClientSecret: "fedex-secret",
	}, proxy.Settings{})
}

// TestFedExAdapter_Track_Delivered verifies a delivered shipment with no
// scan events and a delivery window estimate.
func TestFedExAdapter_Track_Delivered(t *testing.T) {
	trackJSON := `{
		"output": {
			"completeTrackResults": [
				{
					"trackingNumber": "111111111111",
					"trackResults": [
						{
							"latestStatusDetail": {"derivedCode": "DL", "statusByLocale": "Delivered"},
							"estimatedDeliveryTimeWindow": {"window": {"begins": "2024-01-15T08:00:00", "ends": "2024-01-15T18:00:00"}}
						}
					]
				}
			]
		}
	}`

	ts := newFedExTestServer(t, trackJSON)
	defer ts.Close()

	adapter := newFedExTestAdapter(ts.URL)
	result, err := adapter.Track(context.Background(), "111111111111")

	require.NoError(t, err)
	assert.Equal(t, domain.CarrierFedEx, result.Carrier)
	assert.Equal(t, "111111111111", result.TrackingNumber)
	assert.Equal(t, domain.StatusDelivered, result.Status)
	assert.Empty(t, result.Events)
	require.NotNil(t, result.EstimatedDelivery)
	assert.Equal(t, "2024-01-15T18:00:00", *result.EstimatedDelivery)
}

// TestFedExAdapter_Track_ScanEvents verifies event parsing, location joining
// and the status fallback to the most recent scan event.
func TestFedExAdapter_Track_ScanEvents(t *testing.T) {
	trackJSON := `{
		"output": {
			"completeTrackResults": [
				{
					"trackResults": [
						{
							"scanEvents": [
								{
									"date": "2024-01-14T09:12:00-06:00",
									"eventDescription": "In transit",
									"derivedStatusCode": "IT",
									"scanLocation": {"city": "Memphis", "stateOrProvinceCode": "TN", "countryCode": "US"}
								},
								{
									"date": "2024-01-13T17:40:00-06:00",
									"eventDescription": "Picked up",
									"derivedStatusCode": "PU",
									"scanLocation": {"city": "Austin", "countryCode": "US"}
								}
							]
						}
					]
				}
			]
		}
	}`

	ts := newFedExTestServer(t, trackJSON)
	defer ts.Close()

	adapter := newFedExTestAdapter(ts.URL)
	result, err := adapter.Track(context.Background(), "222222222222")

	require.NoError(t, err)
	// No latestStatusDetail: the newest scan event drives the status.
	assert.Equal(t, domain.StatusInTransit, result.Status)
	assert.Nil(t, result.EstimatedDelivery)
	require.Len(t, result.Events, 2)

	assert.Equal(t, "2024-01-14T09:12:00-06:00", result.Events[0].Timestamp)
	assert.Equal(t, "Memphis, TN, US", result.Events[0].Location)
	assert.Equal(t, "In transit", result.Events[0].Description)
	assert.Equal(t, domain.StatusInTransit, result.Events[0].Status)

	assert.Equal(t, "Austin, US", result.Events[1].Location)
	assert.Equal(t, domain.StatusPickedUp, result.Events[1].Status)
}

// TestFedExAdapter_Track_NotFound verifies that empty results and per-result
// errors both map to the not-found failure.
func TestFedExAdapter_Track_NotFound(t *testing.T) {
	t.Run("EmptyResults", func(t *testing.T) {
		ts := newFedExTestServer(t, `{"output": {"completeTrackResults": []}}`)
		defer ts.Close()

		adapter := newFedExTestAdapter(ts.URL)
		_, err := adapter.Track(context.Background(), "000000000000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ResultError", func(t *testing.T) {
		trackJSON := `{
			"output": {
				"completeTrackResults": [
					{"trackResults": [{"error": {"code": "TRACKING.TRACKINGNUMBER.NOTFOUND", "message": "not found"}}]}
				]
			}
		}`
		ts := newFedExTestServer(t, trackJSON)
		defer ts.Close()

		adapter := newFedExTestAdapter(ts.URL)
		_, err := adapter.Track(context.Background(), "000000000000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// TestFedExAdapter_Track_UpstreamError verifies the non-success HTTP path.
func TestFedExAdapter_Track_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			w.Write([]byte(`{"access_token":"fedex-token","expires_in":3599}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	adapter := newFedExTestAdapter(ts.URL)
	_, err := adapter.Track(context.Background(), "333333333333")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

// TestFedExAdapter_Track_AuthFailures verifies token endpoint failure modes.
func TestFedExAdapter_Track_AuthFailures(t *testing.T) {
	t.Run("MissingAccessToken", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"expires_in":3599}`))
		}))
		defer ts.Close()

		adapter := newFedExTestAdapter(ts.URL)
		_, err := adapter.Track(context.Background(), "444444444444")
		assert.ErrorIs(t, err, domain.ErrBadAuthResponse)
	})

	t.Run("TokenEndpointError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		adapter := newFedExTestAdapter(ts.URL)
		_, err := adapter.Track(context.Background(), "444444444444")
		assert.ErrorIs(t, err, domain.ErrAuthFailed)
	})
}

// TestMapFedExStatus verifies the mapper is total over arbitrary input.
func TestMapFedExStatus(t *testing.T) {
	assert.Equal(t, domain.StatusPending, mapFedExStatus("IN"))
	assert.Equal(t, domain.StatusPickedUp, mapFedExStatus("PU"))
	assert.Equal(t, domain.StatusInTransit, mapFedExStatus("IT"))
	assert.Equal(t, domain.StatusOutForDelivery, mapFedExStatus("OD"))
	assert.Equal(t, domain.StatusDelivered, mapFedExStatus("DL"))
	assert.Equal(t, domain.StatusException, mapFedExStatus("DE"))
	assert.Equal(t, domain.StatusDelivered, mapFedExStatus("dl"))
	assert.Equal(t, domain.StatusUnknown, mapFedExStatus(""))
	assert.Equal(t, domain.StatusUnknown, mapFedExStatus("ZZ"))
}
