package tradematch

import (
	"slices"
	"strconv"
)

// MatchOptions configures a MatchTrades run. The zero value is a valid,
// fully explicit configuration: FIFO, fees and dividends excluded,
// deterministic ids, wall-clock today. Use DefaultMatchOptions for the
// conventional settings.
type MatchOptions struct {
	// Method selects the lot-consumption policy. Unrecognized values
	// behave as FIFO.
	Method LotMethod
	// IncludeFees allocates proportional buy/sell fees to each match.
	IncludeFees bool
	// IncludeDividends allocates date-overlapping dividend amounts to
	// each match and open position.
	IncludeDividends bool
	// IDs generates trade and position identifiers. Nil selects the
	// deterministic UUIDv5 generator.
	IDs IDGenerator
	// Now supplies the current date, used for the days-open figure and
	// the dividend window of open positions. Nil means Today.
	Now func() Date
}

// DefaultMatchOptions returns the conventional configuration: FIFO with
// fees and dividends included.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{Method: FIFO, IncludeFees: true, IncludeDividends: true}
}

// ClosedTrade is a fully resolved buy-quantity-against-sell-quantity
// match, with realized P&L. It is immutable once created.
type ClosedTrade struct {
	ID             string   `json:"id"`
	Symbol         string   `json:"symbol"`
	EntryDate      Date     `json:"entryDate"`
	ExitDate       Date     `json:"exitDate"`
	Quantity       Quantity `json:"quantity"`
	EntryPrice     Money    `json:"entryPrice"`
	ExitPrice      Money    `json:"exitPrice"`
	TotalFees      Money    `json:"totalFees"`
	TotalDividends Money    `json:"totalDividends"`
	RealizedPL     Money    `json:"realizedPL"`
	ReturnPercent  Percent  `json:"returnPercent"`
	HoldingDays    int      `json:"holdingPeriodDays"`
	AccountID      string   `json:"accountId,omitempty"`
	AccountName    string   `json:"accountName,omitempty"`
	Currency       string   `json:"currency"`
	BuyActivityID  string   `json:"buyActivityId"`
	SellActivityID string   `json:"sellActivityId"`
}

// OpenPosition is unmatched buy quantity remaining after all sells are
// applied. CurrentPrice defaults to the cost basis; Reprice overwrites it
// with a live market price.
type OpenPosition struct {
	ID               string   `json:"id"`
	Symbol           string   `json:"symbol"`
	Quantity         Quantity `json:"quantity"`
	AverageCost      Money    `json:"averageCost"`
	CurrentPrice     Money    `json:"currentPrice"`
	MarketValue      Money    `json:"marketValue"`
	UnrealizedPL     Money    `json:"unrealizedPL"`
	UnrealizedReturn Percent  `json:"unrealizedReturnPercent"`
	TotalFees        Money    `json:"totalFees"`
	TotalDividends   Money    `json:"totalDividends"`
	DaysOpen         int      `json:"daysOpen"`
	OpenDate         Date     `json:"openDate"`
	AccountID        string   `json:"accountId,omitempty"`
	Currency         string   `json:"currency"`
	ActivityIDs      []string `json:"activityIds"`
}

// MatchResult is the complete outcome of one matching run. The unmatched
// slices are data-quality signals (short sells, missing history, empty
// buys), not errors.
type MatchResult struct {
	ClosedTrades   []ClosedTrade  `json:"closedTrades"`
	OpenPositions  []OpenPosition `json:"openPositions"`
	UnmatchedBuys  []Activity     `json:"unmatchedBuys"`
	UnmatchedSells []Activity     `json:"unmatchedSells"`
}

// MatchTrades consumes buy lots against sell activities per symbol in
// chronological order, under the configured lot method. It is a pure
// function of its inputs: the same activities and options always produce
// the same result. Malformed numeric fields have already degraded to zero
// at coercion; selling more than recorded history can satisfy produces an
// unmatched-sell remainder.
func MatchTrades(activities []Activity, opts MatchOptions) MatchResult {
	ids := opts.IDs
	if ids == nil {
		ids = uuidGenerator{}
	}
	now := opts.Now
	if now == nil {
		now = Today
	}

	g := normalize(activities)
	var res MatchResult

	for _, symbol := range g.symbols {
		stream := slices.Clone(g.trading[symbol])
		// Chronological order is mandatory for queueing and averaging;
		// the sort is stable so same-day activities keep input order.
		slices.SortStableFunc(stream, func(a, b Activity) int {
			if a.Date.Before(b.Date) {
				return -1
			}
			if a.Date.After(b.Date) {
				return 1
			}
			return 0
		})

		dividends := g.dividends[symbol]
		pool := newPool(opts.Method)

		for _, act := range stream {
			switch act.Type {
			case Buy:
				if !act.Quantity.Decimal().IsPositive() {
					res.UnmatchedBuys = append(res.UnmatchedBuys, act)
					continue
				}
				pool.add(act)

			case Sell:
				want := Q(act.Quantity.Decimal())
				if !want.IsPositive() {
					continue
				}
				matched := Q(0)
				for _, f := range pool.consume(want) {
					trade := closeTrade(f, act, dividends, opts, ids, len(res.ClosedTrades))
					res.ClosedTrades = append(res.ClosedTrades, trade)
					matched = matched.Add(f.quantity)
				}
				if rest := want.Sub(matched); rest.IsPositive() {
					short := act
					short.Quantity = N(rest.value)
					res.UnmatchedSells = append(res.UnmatchedSells, short)
				}
			}
		}

		for _, l := range pool.open() {
			pos := openPosition(l, symbol, dividends, opts, ids, now())
			res.OpenPositions = append(res.OpenPositions, pos)
		}
	}
	return res
}

// closeTrade turns one fill into a ClosedTrade against the given sell.
func closeTrade(f fill, sell Activity, dividends []Activity, opts MatchOptions, ids IDGenerator, seq int) ClosedTrade {
	currency := sell.Currency
	if currency == "" {
		currency = f.entryPrice.Currency()
	}

	entry := f.entryPrice.In(currency)
	exit := M(sell.UnitPrice.Decimal(), currency)

	fees := M(0, currency)
	if opts.IncludeFees {
		sellShare := f.quantity.Ratio(Q(sell.Quantity.Decimal()))
		fees = f.buyFee.In(currency).Add(M(sell.Fee.Decimal(), currency).Scale(sellShare))
	}

	divs := M(0, currency)
	if opts.IncludeDividends {
		divs = dividendsBetween(dividends, f.entryDate, sell.Date, currency).Scale(f.divWeight)
	}

	realized := exit.Sub(entry).Mul(f.quantity).Sub(fees).Add(divs)

	var ret Percent
	if basis := entry.Mul(f.quantity); !basis.IsZero() {
		ret = Percent(realized.AsFloat() / basis.AsFloat() * 100)
	}

	buyID := ""
	if len(f.buyIDs) > 0 {
		buyID = f.buyIDs[0]
	}

	return ClosedTrade{
		ID:             ids.NewID(sell.Symbol, buyID, sell.ID, strconv.Itoa(seq)),
		Symbol:         sell.Symbol,
		EntryDate:      f.entryDate,
		ExitDate:       sell.Date,
		Quantity:       f.quantity,
		EntryPrice:     entry,
		ExitPrice:      exit,
		TotalFees:      fees,
		TotalDividends: divs,
		RealizedPL:     realized,
		ReturnPercent:  ret,
		HoldingDays:    sell.Date.Sub(f.entryDate),
		AccountID:      sell.AccountID,
		AccountName:    sell.AccountName,
		Currency:       currency,
		BuyActivityID:  buyID,
		SellActivityID: sell.ID,
	}
}

// openPosition turns one residual lot into an OpenPosition valued at cost.
func openPosition(l openLot, symbol string, dividends []Activity, opts MatchOptions, ids IDGenerator, now Date) OpenPosition {
	currency := l.costPerShare.Currency()

	fees := M(0, currency)
	if opts.IncludeFees {
		fees = l.buyFee
	}
	divs := M(0, currency)
	if opts.IncludeDividends {
		divs = dividendsBetween(dividends, l.openDate, now, currency).Scale(l.divWeight)
	}

	id := []string{"position", symbol, l.openDate.String()}
	id = append(id, l.buyIDs...)

	pos := OpenPosition{
		ID:             ids.NewID(id...),
		Symbol:         symbol,
		Quantity:       l.quantity,
		AverageCost:    l.costPerShare,
		CurrentPrice:   l.costPerShare, // cost basis until a market price arrives
		TotalFees:      fees,
		TotalDividends: divs,
		DaysOpen:       now.Sub(l.openDate),
		OpenDate:       l.openDate,
		AccountID:      l.accountID,
		Currency:       currency,
		ActivityIDs:    l.buyIDs,
	}
	return pos.revalued()
}

// dividendsBetween sums dividend amounts dated within [from, to], taken
// verbatim from the amount field.
func dividendsBetween(dividends []Activity, from, to Date, currency string) Money {
	total := M(0, currency)
	for _, d := range dividends {
		if d.Date.Before(from) || d.Date.After(to) {
			continue
		}
		total = total.Add(M(d.Amount.Decimal(), currency))
	}
	return total
}

// revalued recomputes the derived market fields from CurrentPrice.
func (p OpenPosition) revalued() OpenPosition {
	p.MarketValue = p.CurrentPrice.Mul(p.Quantity)
	p.UnrealizedPL = p.CurrentPrice.Sub(p.AverageCost).Mul(p.Quantity).Sub(p.TotalFees).Add(p.TotalDividends)
	p.UnrealizedReturn = 0
	if basis := p.AverageCost.Mul(p.Quantity); !basis.IsZero() {
		p.UnrealizedReturn = Percent(p.UnrealizedPL.AsFloat() / basis.AsFloat() * 100)
	}
	return p
}

// Reprice merges live market prices into open positions, recomputing
// market value and unrealized P&L. Symbols without a price keep their
// cost-basis valuation. Matching results are unaffected; Reprice returns
// updated copies and leaves its input untouched.
func Reprice(positions []OpenPosition, prices map[string]float64) []OpenPosition {
	out := make([]OpenPosition, 0, len(positions))
	for _, p := range positions {
		if price, ok := prices[p.Symbol]; ok {
			p.CurrentPrice = M(price, p.Currency)
		}
		out = append(out, p.revalued())
	}
	return out
}
