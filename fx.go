package tradematch

import (
	"fmt"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ValidateCurrency checks that the given code is a known ISO 4217
// currency.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

// Rates converts amounts into a single reporting currency using a table
// of source-currency rates. A currency absent from the table converts
// 1:1; those currencies are recorded and exposed through Missing so the
// caller can log the condition (the engine itself performs no I/O).
type Rates struct {
	reporting string
	table     map[string]decimal.Decimal
	missing   map[string]bool
}

// NewRates builds a conversion table into the reporting currency. Keys of
// rates are source currency codes; values are the multiplier into the
// reporting currency.
func NewRates(reporting string, rates map[string]float64) (*Rates, error) {
	if err := ValidateCurrency(reporting); err != nil {
		return nil, fmt.Errorf("invalid reporting currency: %w", err)
	}
	table := make(map[string]decimal.Decimal, len(rates))
	for cur, rate := range rates {
		table[cur] = decimal.NewFromFloat(rate)
	}
	return &Rates{reporting: reporting, table: table, missing: make(map[string]bool)}, nil
}

// Reporting returns the reporting currency code.
func (r *Rates) Reporting() string { return r.reporting }

// Convert returns the amount expressed in the reporting currency. Amounts
// already denominated in it (or carrying no currency) pass through.
func (r *Rates) Convert(m Money) Money {
	from := m.Currency()
	if from == "" || from == r.reporting {
		return m.In(r.reporting)
	}
	rate, ok := r.table[from]
	if !ok {
		// 1:1 is the safe fallback; remember the gap for the caller.
		r.missing[from] = true
		return m.In(r.reporting)
	}
	return m.Scale(rate).In(r.reporting)
}

// Missing returns the currencies that were converted with the 1:1
// fallback because no rate was supplied, sorted for stable output.
func (r *Rates) Missing() []string {
	out := make([]string, 0, len(r.missing))
	for cur := range r.missing {
		out = append(out, cur)
	}
	sort.Strings(out)
	return out
}
