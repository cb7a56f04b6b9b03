package tradematch

import (
	"testing"
)

func TestRates_Convert(t *testing.T) {
	rates := usdRates(map[string]float64{"EUR": 1.1})

	if got := rates.Convert(EUR(100)); !got.Equal(USD(110)) {
		t.Errorf("Convert(€100.00) = %s, want $110.00", got)
	}
	// reporting currency passes through
	if got := rates.Convert(USD(42)); !got.Equal(USD(42)) {
		t.Errorf("Convert($42.00) = %s, want $42.00", got)
	}
	// the weak "" currency passes through too
	if got := rates.Convert(M(7, "")); !got.Equal(USD(7)) {
		t.Errorf("Convert(7) = %s, want $7.00", got)
	}
	if missing := rates.Missing(); len(missing) != 0 {
		t.Errorf("Missing = %v, want none", missing)
	}
}

func TestRates_FallbackRecordsMissing(t *testing.T) {
	rates := usdRates(nil)

	if got := rates.Convert(M(100, "GBP")); !got.Equal(USD(100)) {
		t.Errorf("Convert without a rate = %s, want 1:1 fallback $100.00", got)
	}
	rates.Convert(EUR(5))
	rates.Convert(EUR(5))

	missing := rates.Missing()
	if len(missing) != 2 || missing[0] != "EUR" || missing[1] != "GBP" {
		t.Errorf("Missing = %v, want [EUR GBP]", missing)
	}
}

func TestNewRates_InvalidReportingCurrency(t *testing.T) {
	if _, err := NewRates("BANANAS", nil); err == nil {
		t.Errorf("NewRates accepted an unknown reporting currency")
	}
}

func TestValidateCurrency(t *testing.T) {
	if err := ValidateCurrency("EUR"); err != nil {
		t.Errorf("ValidateCurrency(EUR) error = %v", err)
	}
	if err := ValidateCurrency("XYZ123"); err == nil {
		t.Errorf("ValidateCurrency accepted an unknown code")
	}
}
