package handler

import (
	"errors"

	"parcel-tracker/internal/features/tracking/domain"
	"parcel-tracker/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
)

// TrackingHandler handles HTTP requests for tracking operations.
type TrackingHandler struct {
	trackingService *service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// Track godoc
// @Summary Track a shipment
// @Description Retrieves the unified tracking result for a carrier and tracking number
// @Tags tracking
// @Accept json
// @Produce json
// @Param carrier path string true "Carrier code (fedex, ups, nova_poshta)"
// @Param trackingNumber path string true "Tracking Number"
// @Success 200 {object} domain.TrackingResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /track/{carrier}/{trackingNumber} [get]
func (h *TrackingHandler) Track(c *fiber.Ctx) error {
	code, ok := domain.ParseCarrierCode(c.Params("carrier"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "unknown carrier",
			RayID:   rayID(c),
		})
	}

	trackingNumber := c.Params("trackingNumber")

	result, err := h.trackingService.Track(c.UserContext(), code, trackingNumber)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTrackingNumber):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: "tracking number must be non-empty and at most 50 characters",
				RayID:   rayID(c),
			})
		case errors.Is(err, domain.ErrCarrierNotSupported):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "carrier not supported",
				RayID:   rayID(c),
			})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "tracking number not found",
				RayID:   rayID(c),
			})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}
	}

	return c.JSON(result)
}

// Carriers godoc
// @Summary List registered carriers
// @Description Returns the carrier codes that have credentials configured
// @Tags tracking
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /carriers [get]
func (h *TrackingHandler) Carriers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"carriers": h.trackingService.Carriers(),
	})
}
