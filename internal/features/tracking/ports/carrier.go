package ports

import (
	"context"

	"parcel-tracker/internal/features/tracking/domain"
)

// Carrier defines the interface for carrier tracking implementations.
type Carrier interface {
	// Code returns the carrier code this adapter serves.
	Code() domain.CarrierCode
	// Name returns the carrier's display name.
	Name() string
	// Track retrieves the unified tracking result for a given tracking number.
	Track(ctx context.Context, trackingNumber string) (*domain.TrackingResult, error)
}
