package tradematch

import (
	"github.com/shopspring/decimal"
)

// lot represents a single purchase of a security, tracked until fully
// matched against sells.
type lot struct {
	buy       Activity // source buy activity
	original  Quantity
	remaining Quantity
}

// fill is one consumption slice produced by a pool for a sell: the matched
// quantity together with everything needed to cost it. The buy-side fee is
// already prorated; the dividend weight is the fraction of the symbol's
// dividend amounts attributable to this slice.
type fill struct {
	quantity   Quantity
	entryDate  Date
	entryPrice Money // per-share cost basis
	buyFee     Money
	divWeight  decimal.Decimal
	buyIDs     []string
}

// openLot is the residual state of a pool at end-of-stream, one per
// surviving lot (or one for the whole average pool).
type openLot struct {
	openDate     Date
	quantity     Quantity
	costPerShare Money
	buyFee       Money
	divWeight    decimal.Decimal
	buyIDs       []string
	accountID    string
}

// lotPool is the single abstraction behind the lot-consumption policies.
// Both implementations produce fills; fee inclusion, dividend lookup and
// P&L live in the matcher so the policies share them.
type lotPool interface {
	// add records a buy. The quantity is assumed positive.
	add(buy Activity)
	// consume matches a sell quantity against the pool, mutating it and
	// returning one fill per consumed slice. The sum of fill quantities
	// is at most q; a short sum means the pool ran dry.
	consume(q Quantity) []fill
	// open returns the unconsumed remainder at end-of-stream.
	open() []openLot
}

func newPool(method LotMethod) lotPool {
	switch method {
	case LIFO:
		return &queuePool{newestFirst: true}
	case AverageCost:
		return &averagePool{}
	default:
		// FIFO, and the documented fallback for unrecognized methods.
		return &queuePool{}
	}
}

// queuePool keeps one lot per buy in arrival order and consumes from the
// head (FIFO) or the tail (LIFO).
type queuePool struct {
	newestFirst bool
	lots        []lot
}

func (p *queuePool) add(buy Activity) {
	q := Q(buy.Quantity.Decimal())
	p.lots = append(p.lots, lot{buy: buy, original: q, remaining: q})
}

func (p *queuePool) consume(q Quantity) []fill {
	var fills []fill
	for q.IsPositive() && len(p.lots) > 0 {
		i := 0
		if p.newestFirst {
			i = len(p.lots) - 1
		}
		l := &p.lots[i]

		matched := q.Min(l.remaining)
		share := matched.Ratio(l.original)
		fills = append(fills, fill{
			quantity:   matched,
			entryDate:  l.buy.Date,
			entryPrice: M(l.buy.UnitPrice.Decimal(), l.buy.Currency),
			buyFee:     M(l.buy.Fee.Decimal(), l.buy.Currency).Scale(share),
			divWeight:  share,
			buyIDs:     []string{l.buy.ID},
		})

		l.remaining = l.remaining.Sub(matched)
		q = q.Sub(matched)
		if l.remaining.IsZero() {
			p.lots = append(p.lots[:i], p.lots[i+1:]...)
		}
	}
	return fills
}

func (p *queuePool) open() []openLot {
	var open []openLot
	for _, l := range p.lots {
		share := l.remaining.Ratio(l.original)
		open = append(open, openLot{
			openDate:     l.buy.Date,
			quantity:     l.remaining,
			costPerShare: M(l.buy.UnitPrice.Decimal(), l.buy.Currency),
			buyFee:       M(l.buy.Fee.Decimal(), l.buy.Currency).Scale(share),
			divWeight:    share,
			buyIDs:       []string{l.buy.ID},
			accountID:    l.buy.AccountID,
		})
	}
	return open
}

// averagePool merges all buys into a single weighted-average-priced
// holding. At most one holding is live at a time; a fully depleted pool
// is replaced by the next buy.
type averagePool struct {
	total     Quantity // total quantity bought into the live holding
	remaining Quantity
	avgPrice  Money // invariant: cost basis total / remaining quantity
	openDate  Date
	buys      []Activity
}

func (p *averagePool) add(buy Activity) {
	q := Q(buy.Quantity.Decimal())
	price := M(buy.UnitPrice.Decimal(), buy.Currency)

	if p.remaining.IsZero() {
		// Depleted (or brand new): the holding starts over.
		*p = averagePool{total: q, remaining: q, avgPrice: price, openDate: buy.Date, buys: []Activity{buy}}
		return
	}

	// Weighted-average merge. A sell never moves the average price; only
	// buys do. The first buy's currency sticks for the whole holding.
	price = price.In(p.avgPrice.Currency())
	merged := p.remaining.Add(q)
	p.avgPrice = p.avgPrice.Mul(p.remaining).Add(price.Mul(q)).Div(merged)
	p.remaining = merged
	p.total = p.total.Add(q)
	p.buys = append(p.buys, buy)
}

func (p *averagePool) consume(q Quantity) []fill {
	if !p.remaining.IsPositive() {
		return nil
	}
	matched := q.Min(p.remaining)
	share := matched.Ratio(p.total)

	f := fill{
		quantity:   matched,
		entryDate:  p.openDate,
		entryPrice: p.avgPrice,
		buyFee:     p.feeShare(share),
		divWeight:  share,
		buyIDs:     p.buyIDs(),
	}
	p.remaining = p.remaining.Sub(matched)
	return []fill{f}
}

func (p *averagePool) open() []openLot {
	if !p.remaining.IsPositive() {
		return nil
	}
	share := p.remaining.Ratio(p.total)
	return []openLot{{
		openDate:     p.openDate,
		quantity:     p.remaining,
		costPerShare: p.avgPrice,
		buyFee:       p.feeShare(share),
		divWeight:    share,
		buyIDs:       p.buyIDs(),
		accountID:    p.buys[0].AccountID,
	}}
}

// feeShare prorates the fees of all contributing buys by the given share
// of the holding's total quantity.
func (p *averagePool) feeShare(share decimal.Decimal) Money {
	total := decimal.Zero
	for _, b := range p.buys {
		total = total.Add(b.Fee.Decimal().Mul(share))
	}
	return M(total, p.avgPrice.Currency())
}

func (p *averagePool) buyIDs() []string {
	ids := make([]string, 0, len(p.buys))
	for _, b := range p.buys {
		ids = append(ids, b.ID)
	}
	return ids
}
