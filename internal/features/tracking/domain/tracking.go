package domain

// CarrierCode identifies a supported parcel carrier.
type CarrierCode string

const (
	// CarrierFedEx identifies Federal Express.
	CarrierFedEx CarrierCode = "fedex"
	// CarrierUPS identifies United Parcel Service.
	CarrierUPS CarrierCode = "ups"
	// CarrierDHL is reserved; no adapter is implemented yet.
	CarrierDHL CarrierCode = "dhl"
	// CarrierUSPS is reserved; no adapter is implemented yet.
	CarrierUSPS CarrierCode = "usps"
	// CarrierNovaPoshta identifies Nova Poshta.
	CarrierNovaPoshta CarrierCode = "nova_poshta"
)

// ParseCarrierCode validates a raw carrier identifier against the known set.
func ParseCarrierCode(raw string) (CarrierCode, bool) {
	switch CarrierCode(raw) {
	case CarrierFedEx, CarrierUPS, CarrierDHL, CarrierUSPS, CarrierNovaPoshta:
		return CarrierCode(raw), true
	default:
		return "", false
	}
}

// TrackingStatus represents the carrier-agnostic lifecycle stage of a shipment.
type TrackingStatus string

const (
	// StatusPending indicates the label was created but the parcel is not yet moving.
	StatusPending TrackingStatus = "pending"
	// StatusPickedUp indicates the carrier has taken possession of the parcel.
	StatusPickedUp TrackingStatus = "picked_up"
	// StatusInTransit indicates the parcel is moving through the carrier network.
	StatusInTransit TrackingStatus = "in_transit"
	// StatusOutForDelivery indicates the parcel is on a vehicle for final delivery.
	StatusOutForDelivery TrackingStatus = "out_for_delivery"
	// StatusDelivered indicates the parcel reached the recipient.
	StatusDelivered TrackingStatus = "delivered"
	// StatusException indicates a delivery problem (return, refusal, damage, delay).
	StatusException TrackingStatus = "exception"
	// StatusUnknown is the fallback for unrecognized carrier-native codes.
	StatusUnknown TrackingStatus = "unknown"
)

// TrackingEvent represents a single scan or activity record for a shipment.
type TrackingEvent struct {
	// Timestamp is the event time, ISO-8601 where possible, raw carrier string otherwise.
	Timestamp string `json:"timestamp"`
	// Status is the shipment status at the time of the event.
	Status TrackingStatus `json:"status"`
	// Location is a comma-joined human-readable place, empty if the carrier gave none.
	Location string `json:"location"`
	// Description is the carrier's free-text description of the event.
	Description string `json:"description"`
}

// TrackingResult is the unified response for one tracking query.
type TrackingResult struct {
	// Carrier is the carrier that produced this result.
	Carrier CarrierCode `json:"carrier"`
	// TrackingNumber echoes the queried tracking number.
	TrackingNumber string `json:"tracking_number"`
	// Status is the current status of the shipment.
	Status TrackingStatus `json:"status"`
	// EstimatedDelivery is the carrier's delivery estimate, nil when not provided.
	EstimatedDelivery *string `json:"estimated_delivery"`
	// Events contains the shipment's activity records in carrier-native order.
	Events []TrackingEvent `json:"events"`
}
