package tradematch

import (
	"strconv"
	"time"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// seqIDs is a predictable id generator for assertions on specific ids.
type seqIDs struct{ n int }

func (s *seqIDs) NewID(parts ...string) string {
	s.n++
	return "id-" + strconv.Itoa(s.n)
}

// fixedNow pins the matcher clock to a given day.
func fixedNow(d Date) func() Date { return func() Date { return d } }

// fixedClock pins the calculator clock to midnight UTC of a given day.
func fixedClock(d Date) func() time.Time {
	return func() time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// buyOn builds a buy activity with float-typed numerics.
func buyOn(id, symbol, on string, qty, price, fee float64) Activity {
	return Activity{
		ID: id, Symbol: symbol, Type: Buy, Date: MustParseDate(on),
		Quantity: N(qty), UnitPrice: N(price), Fee: N(fee), Currency: "USD",
	}
}

// sellOn builds a sell activity with float-typed numerics.
func sellOn(id, symbol, on string, qty, price, fee float64) Activity {
	return Activity{
		ID: id, Symbol: symbol, Type: Sell, Date: MustParseDate(on),
		Quantity: N(qty), UnitPrice: N(price), Fee: N(fee), Currency: "USD",
	}
}

// divOn builds a dividend activity; the amount field carries the payout.
func divOn(id, symbol, on string, amount float64) Activity {
	return Activity{
		ID: id, Symbol: symbol, Type: Dividend, Date: MustParseDate(on),
		Amount: N(amount), Currency: "USD",
	}
}

// usdRates builds a rate table into USD, panicking on bad input.
func usdRates(rates map[string]float64) *Rates {
	r, err := NewRates("USD", rates)
	if err != nil {
		panic(err.Error())
	}
	return r
}
