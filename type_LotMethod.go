package tradematch

import "fmt"

// LotMethod defines the order in which buy lots are consumed by sells.
type LotMethod int

const (
	// FIFO (First-In, First-Out) consumes the oldest lot first. It is the
	// default: the zero value, and the fallback for unrecognized methods.
	FIFO LotMethod = iota
	// LIFO (Last-In, First-Out) consumes the most recent lot first.
	LIFO
	// AverageCost pools all buys of a symbol into a single
	// weighted-average-priced holding.
	AverageCost
)

func (m LotMethod) String() string {
	switch m {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case AverageCost:
		return "average"
	default:
		return "unknown"
	}
}

// ParseLotMethod parses a string into a LotMethod.
func ParseLotMethod(s string) (LotMethod, error) {
	switch s {
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "average":
		return AverageCost, nil
	default:
		return 0, fmt.Errorf("unknown lot method: %q", s)
	}
}
