package tradematch

import "slices"

// EquityPoint is one step of the cumulative realized P&L curve. There is
// one point per closed trade; several trades exiting the same day produce
// several points at that date.
type EquityPoint struct {
	Date       Date   `json:"date"`
	TradeID    string `json:"tradeId"`
	RealizedPL Money  `json:"realizedPL"`
	Cumulative Money  `json:"cumulative"`
}

// EquityCurve returns the running cumulative converted realized P&L,
// trade by trade, sorted ascending by exit date (stable for same-day
// exits).
func (p *Performance) EquityCurve(rates *Rates) []EquityPoint {
	trades := slices.Clone(p.trades)
	slices.SortStableFunc(trades, func(a, b ClosedTrade) int {
		if a.ExitDate.Before(b.ExitDate) {
			return -1
		}
		if a.ExitDate.After(b.ExitDate) {
			return 1
		}
		return 0
	})

	points := make([]EquityPoint, 0, len(trades))
	running := M(0, rates.Reporting())
	for _, t := range trades {
		pl := rates.Convert(t.RealizedPL)
		running = running.Add(pl)
		points = append(points, EquityPoint{
			Date:       t.ExitDate,
			TradeID:    t.ID,
			RealizedPL: pl,
			Cumulative: running,
		})
	}
	return points
}
