package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseCarrierCode verifies the closed-enum validation of carrier codes.
func TestParseCarrierCode(t *testing.T) {
	for _, raw := range []string{"fedex", "ups", "dhl", "usps", "nova_poshta"} {
		code, ok := ParseCarrierCode(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, CarrierCode(raw), code)
	}

	for _, raw := range []string{"", "FEDEX", "fed_ex", "pigeon", "nova-poshta"} {
		_, ok := ParseCarrierCode(raw)
		assert.False(t, ok, raw)
	}
}
