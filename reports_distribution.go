package tradematch

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DistributionBucket aggregates the trades sharing one grouping key.
type DistributionBucket struct {
	Key        string  `json:"key"`
	RealizedPL Money   `json:"realizedPL"`
	Trades     int     `json:"trades"`
	MeanReturn Percent `json:"meanReturn"`
}

// Distribution breaks the closed trades down along four independent
// dimensions.
type Distribution struct {
	ReportingCurrency string               `json:"reportingCurrency"`
	BySymbol          []DistributionBucket `json:"bySymbol"`
	ByWeekday         []DistributionBucket `json:"byWeekday"`
	ByHolding         []DistributionBucket `json:"byHoldingPeriod"`
	ByAccount         []DistributionBucket `json:"byAccount"`
}

// holdingBuckets in ascending duration order.
var holdingBuckets = []string{
	"Intraday", "1-7 days", "1-4 weeks", "1-3 months",
	"3-6 months", "6-12 months", "1+ years",
}

func holdingBucket(days int) string {
	switch {
	case days <= 1:
		return holdingBuckets[0]
	case days <= 7:
		return holdingBuckets[1]
	case days <= 30:
		return holdingBuckets[2]
	case days <= 90:
		return holdingBuckets[3]
	case days <= 180:
		return holdingBuckets[4]
	case days <= 365:
		return holdingBuckets[5]
	default:
		return holdingBuckets[6]
	}
}

// accumulator collects the raw per-key figures before bucket assembly.
type accumulator struct {
	pl      map[string]Money
	returns map[string][]float64
	count   map[string]int
}

func newAccumulator() *accumulator {
	return &accumulator{pl: make(map[string]Money), returns: make(map[string][]float64), count: make(map[string]int)}
}

func (a *accumulator) add(key string, pl Money, ret Percent) {
	a.pl[key] = a.pl[key].Add(pl)
	a.returns[key] = append(a.returns[key], float64(ret))
	a.count[key]++
}

// buckets assembles the accumulated figures in the given key order, or
// sorted lexicographically when no order is given. Keys without trades
// are omitted. The mean return is the plain mean of per-trade return
// percents, not weighted by P&L.
func (a *accumulator) buckets(order []string) []DistributionBucket {
	if order == nil {
		for key := range a.count {
			order = append(order, key)
		}
		sort.Strings(order)
	}
	out := make([]DistributionBucket, 0, len(order))
	for _, key := range order {
		n := a.count[key]
		if n == 0 {
			continue
		}
		out = append(out, DistributionBucket{
			Key:        key,
			RealizedPL: a.pl[key],
			Trades:     n,
			MeanReturn: Percent(stat.Mean(a.returns[key], nil)),
		})
	}
	return out
}

// weekdayNames in calendar order, Sunday first.
var weekdayNames = []string{
	time.Sunday.String(), time.Monday.String(), time.Tuesday.String(),
	time.Wednesday.String(), time.Thursday.String(), time.Friday.String(),
	time.Saturday.String(),
}

// Distribution groups the closed trades by symbol, exit weekday, holding
// period and account name, converting P&L into the reporting currency.
// Symbol and account buckets are sorted by key; weekday and holding
// buckets keep their natural order.
func (p *Performance) Distribution(rates *Rates) Distribution {
	bySymbol := newAccumulator()
	byWeekday := newAccumulator()
	byHolding := newAccumulator()
	byAccount := newAccumulator()

	for _, t := range p.trades {
		pl := rates.Convert(t.RealizedPL)
		bySymbol.add(t.Symbol, pl, t.ReturnPercent)
		byWeekday.add(t.ExitDate.Weekday().String(), pl, t.ReturnPercent)
		byHolding.add(holdingBucket(t.HoldingDays), pl, t.ReturnPercent)
		byAccount.add(t.AccountName, pl, t.ReturnPercent)
	}

	return Distribution{
		ReportingCurrency: rates.Reporting(),
		BySymbol:          bySymbol.buckets(nil),
		ByWeekday:         byWeekday.buckets(weekdayNames),
		ByHolding:         byHolding.buckets(holdingBuckets),
		ByAccount:         byAccount.buckets(nil),
	}
}
