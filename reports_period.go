package tradematch

import "sort"

// PeriodPL aggregates realized P&L over one reporting period bucket.
type PeriodPL struct {
	Period     string `json:"period"` // bucket key, e.g. "2024-03" or "2024-W11"
	RealizedPL Money  `json:"realizedPL"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Trades     int    `json:"trades"`
}

// PeriodPL groups trades by the bucket key of their exit date at the
// given granularity and sums converted realized P&L and win/loss counts
// per bucket. Buckets are sorted by key; the key formats sort
// lexicographically in chronological order.
func (p *Performance) PeriodPL(granularity Period, rates *Rates) []PeriodPL {
	buckets := make(map[string]*PeriodPL)
	for _, t := range p.trades {
		key := granularity.Key(t.ExitDate)
		b, ok := buckets[key]
		if !ok {
			b = &PeriodPL{Period: key, RealizedPL: M(0, rates.Reporting())}
			buckets[key] = b
		}
		pl := rates.Convert(t.RealizedPL)
		b.RealizedPL = b.RealizedPL.Add(pl)
		b.Trades++
		if pl.IsPositive() {
			b.Wins++
		} else if pl.IsNegative() {
			b.Losses++
		}
	}

	out := make([]PeriodPL, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
