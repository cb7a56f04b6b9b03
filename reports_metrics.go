package tradematch

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Performance computes reports over a fixed set of closed trades. It is
// stateless: every method converts into the reporting currency of the
// given rate table and returns a freshly computed result, caching
// nothing and mutating neither the trades nor the rates beyond their
// missing-currency record.
type Performance struct {
	trades []ClosedTrade
	now    func() time.Time
}

// NewPerformance creates a calculator over the given closed trades. The
// calendar flags and nothing else depend on the wall clock; use WithNow
// to pin it.
func NewPerformance(trades []ClosedTrade) *Performance {
	return &Performance{trades: trades, now: time.Now}
}

// WithNow returns a copy of the calculator using the given clock for the
// calendar's is-today/is-current-month flags.
func (p *Performance) WithNow(now func() time.Time) *Performance {
	return &Performance{trades: p.trades, now: now}
}

// Metrics summarizes realized and unrealized performance in a single
// reporting currency.
type Metrics struct {
	ReportingCurrency string  `json:"reportingCurrency"`
	TotalTrades       int     `json:"totalTrades"`
	WinningTrades     int     `json:"winningTrades"`
	LosingTrades      int     `json:"losingTrades"`
	WinRate           float64 `json:"winRate"` // ratio in [0,1]
	RealizedPL        Money   `json:"realizedPL"`
	UnrealizedPL      Money   `json:"unrealizedPL"`
	TotalPL           Money   `json:"totalPL"`
	GrossProfit       Money   `json:"grossProfit"`
	GrossLoss         Money   `json:"grossLoss"` // positive magnitude
	ProfitFactor      float64 `json:"profitFactor"`
	AvgWin            Money   `json:"avgWin"`
	AvgLoss           Money   `json:"avgLoss"` // positive magnitude
	Expectancy        Money   `json:"expectancy"`
	LargestWin        Money   `json:"largestWin"`
	LargestLoss       Money   `json:"largestLoss"`
}

// Metrics computes summary metrics over all closed trades plus the given
// open positions. The calculator applies no date filtering; the caller
// decides whether positions (and trades) are period-scoped or global.
func (p *Performance) Metrics(positions []OpenPosition, rates *Rates) Metrics {
	cur := rates.Reporting()
	m := Metrics{
		ReportingCurrency: cur,
		RealizedPL:        M(0, cur),
		UnrealizedPL:      M(0, cur),
		GrossProfit:       M(0, cur),
		GrossLoss:         M(0, cur),
		LargestWin:        M(0, cur),
		LargestLoss:       M(0, cur),
	}

	var wins, losses []float64
	for _, t := range p.trades {
		pl := rates.Convert(t.RealizedPL)
		m.RealizedPL = m.RealizedPL.Add(pl)
		m.TotalTrades++
		switch {
		case pl.IsPositive():
			m.WinningTrades++
			m.GrossProfit = m.GrossProfit.Add(pl)
			wins = append(wins, pl.AsFloat())
			if pl.GreaterThan(m.LargestWin) {
				m.LargestWin = pl
			}
		case pl.IsNegative():
			m.LosingTrades++
			m.GrossLoss = m.GrossLoss.Add(pl.Neg())
			losses = append(losses, pl.Neg().AsFloat())
			if pl.Neg().GreaterThan(m.LargestLoss) {
				m.LargestLoss = pl.Neg()
			}
		}
	}

	for _, pos := range positions {
		m.UnrealizedPL = m.UnrealizedPL.Add(rates.Convert(pos.UnrealizedPL))
	}
	m.TotalPL = m.RealizedPL.Add(m.UnrealizedPL)

	if m.TotalTrades > 0 {
		m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades)
	}

	avgWin, avgLoss := 0.0, 0.0
	if len(wins) > 0 {
		avgWin = stat.Mean(wins, nil)
	}
	if len(losses) > 0 {
		avgLoss = stat.Mean(losses, nil)
	}
	m.AvgWin = M(avgWin, cur)
	m.AvgLoss = M(avgLoss, cur)

	switch {
	case !m.GrossLoss.IsZero():
		m.ProfitFactor = m.GrossProfit.AsFloat() / m.GrossLoss.AsFloat()
	case m.GrossProfit.IsPositive():
		m.ProfitFactor = math.Inf(1)
	}

	m.Expectancy = M(m.WinRate*avgWin-(1-m.WinRate)*avgLoss, cur)
	return m
}
