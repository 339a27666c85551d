package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parcel-tracker/internal/core/cache"
	"parcel-tracker/internal/core/logger"
	"parcel-tracker/internal/features/tracking/domain"
	"parcel-tracker/internal/features/tracking/registry"

	"go.uber.org/zap"
)

// maxTrackingNumberLength is the ceiling applied uniformly to all carriers.
const maxTrackingNumberLength = 50

// TrackingService orchestrates tracking requests across registered carrier
// adapters, with an optional short-lived result cache in front of them.
type TrackingService struct {
	registry *registry.CarrierRegistry
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTrackingService creates a new TrackingService. A nil cache disables
// result caching.
func NewTrackingService(reg *registry.CarrierRegistry, resultCache cache.Cache, cacheTTL time.Duration) *TrackingService {
	return &TrackingService{
		registry: reg,
		cache:    resultCache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("tracking"),
	}
}

// Track validates the tracking number, resolves the carrier adapter and
// returns the unified tracking result.
func (s *TrackingService) Track(ctx context.Context, code domain.CarrierCode, trackingNumber string) (*domain.TrackingResult, error) {
	if trackingNumber == "" || len(trackingNumber) > maxTrackingNumberLength {
		return nil, domain.ErrInvalidTrackingNumber
	}

	carrier, ok := s.registry.Get(code)
	if !ok {
		return nil, domain.ErrCarrierNotSupported
	}

	if cached := s.fromCache(ctx, code, trackingNumber); cached != nil {
		return cached, nil
	}

	result, err := carrier.Track(ctx, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to track with %s: %w", carrier.Name(), err)
	}

	s.store(ctx, code, trackingNumber, result)

	return result, nil
}

// Carriers returns the codes of all registered carriers.
func (s *TrackingService) Carriers() []domain.CarrierCode {
	return s.registry.List()
}

func cacheKey(code domain.CarrierCode, trackingNumber string) string {
	return fmt.Sprintf("tracking:%s:%s", code, trackingNumber)
}

// fromCache returns a previously cached result, or nil on miss, decode
// failure or disabled cache.
func (s *TrackingService) fromCache(ctx context.Context, code domain.CarrierCode, trackingNumber string) *domain.TrackingResult {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, cacheKey(code, trackingNumber))
	if err != nil {
		return nil
	}

	var result domain.TrackingResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.logger.Warn("Failed to decode cached tracking result", zap.Error(err))
		return nil
	}
	return &result
}

// store caches a successful result. Cache failures are logged, never
// surfaced to the caller.
func (s *TrackingService) store(ctx context.Context, code domain.CarrierCode, trackingNumber string, result *domain.TrackingResult) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("Failed to encode tracking result for cache", zap.Error(err))
		return
	}

	if err := s.cache.Set(ctx, cacheKey(code, trackingNumber), data, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache tracking result", zap.Error(err))
	}
}
