package tradematch

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ActivityType is a typed string for identifying activity records.
type ActivityType string

// Activity types recognized by the engine.
const (
	Buy      ActivityType = "BUY"
	Sell     ActivityType = "SELL"
	Dividend ActivityType = "DIVIDEND"
)

// Numeric is an exact decimal value parsed from a heterogeneous source
// field. Upstream records carry quantities, prices, fees and amounts
// typed at will (decimal strings, floats, integers); Numeric is the
// explicit coercion step: anything unparsable becomes zero, never an
// error. Use N to coerce an in-memory value, or unmarshal from JSON.
type Numeric struct {
	value decimal.Decimal
}

// N coerces an arbitrary value into a Numeric. Strings are parsed as
// decimals, numeric types pass through, everything else (including nil
// and garbage strings) coerces to zero.
func N(v any) Numeric {
	switch x := v.(type) {
	case nil:
		return Numeric{}
	case Numeric:
		return x
	case decimal.Decimal:
		return Numeric{value: x}
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return Numeric{}
		}
		return Numeric{value: d}
	case json.Number:
		return N(string(x))
	case float64:
		return Numeric{value: decimal.NewFromFloat(x)}
	case float32:
		return Numeric{value: decimal.NewFromFloat32(x)}
	case int:
		return Numeric{value: decimal.NewFromInt(int64(x))}
	case int64:
		return Numeric{value: decimal.NewFromInt(x)}
	default:
		return Numeric{}
	}
}

// Decimal returns the canonical decimal value.
func (n Numeric) Decimal() decimal.Decimal { return n.value }

// IsZero reports whether the value is zero (including coercion failures).
func (n Numeric) IsZero() bool { return n.value.IsZero() }

// Equal reports whether two values are numerically equal.
func (n Numeric) Equal(x Numeric) bool { return n.value.Equal(x.value) }

func (n Numeric) String() string { return n.value.String() }

// UnmarshalJSON accepts a JSON number, a quoted decimal string, or null.
// Any other shape coerces to zero.
func (n *Numeric) UnmarshalJSON(b []byte) error {
	var raw any
	d := json.NewDecoder(strings.NewReader(string(b)))
	d.UseNumber()
	if err := d.Decode(&raw); err != nil {
		*n = Numeric{}
		return nil
	}
	*n = N(raw)
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) { return n.value.MarshalJSON() }

// Activity is a single raw account record: a buy, a sell, or a dividend.
// It is the engine's immutable input; the engine never modifies one.
type Activity struct {
	ID          string       `json:"id"`
	Symbol      string       `json:"symbol"`
	AccountID   string       `json:"accountId,omitempty"`
	AccountName string       `json:"accountName,omitempty"`
	Type        ActivityType `json:"activityType"`
	Date        Date         `json:"date"`
	Quantity    Numeric      `json:"quantity"`
	UnitPrice   Numeric      `json:"unitPrice"`
	Fee         Numeric      `json:"fee"`
	Amount      Numeric      `json:"amount"`
	Currency    string       `json:"currency"`
	AssetName   string       `json:"assetName,omitempty"`
}

// grouped holds the normalized activity stream: trading (buy/sell) and
// dividend activities, bucketed by symbol. Order within a bucket is the
// input order; chronological order is imposed by the matcher.
type grouped struct {
	trading   map[string][]Activity
	dividends map[string][]Activity
	symbols   []string // symbols with trading activity, in first-seen order
}

// normalize partitions activities into per-symbol trading and dividend
// buckets. Numeric coercion already happened when the Activity values
// were built (N or JSON unmarshalling); records of unknown type are
// ignored.
func normalize(activities []Activity) grouped {
	g := grouped{
		trading:   make(map[string][]Activity),
		dividends: make(map[string][]Activity),
	}
	for _, a := range activities {
		switch a.Type {
		case Buy, Sell:
			if _, seen := g.trading[a.Symbol]; !seen {
				g.symbols = append(g.symbols, a.Symbol)
			}
			g.trading[a.Symbol] = append(g.trading[a.Symbol], a)
		case Dividend:
			g.dividends[a.Symbol] = append(g.dividends[a.Symbol], a)
		}
	}
	return g
}
