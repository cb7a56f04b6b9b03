// Package tradematch turns a raw stream of buy/sell/dividend activity
// records into matched round-trip trades, open positions, and derived
// performance analytics.
//
// The core functionalities include:
//   - Activity Normalization: coercing heterogeneous numeric fields
//     (quantities, prices, fees and amounts may arrive as strings or
//     numbers) into exact decimal values, and partitioning the stream
//     into per-symbol trading and dividend buckets.
//   - Lot Matching: consuming buy lots against sells under a configurable
//     policy (FIFO, LIFO, or average cost), emitting a ClosedTrade for
//     every matched quantity slice with proportionally allocated fees and
//     dividends, and leaving unconsumed quantity as OpenPositions.
//   - Performance Reports: summary metrics, an equity curve, periodized
//     P&L series, multi-dimensional trade distributions, and a calendar
//     grid, all normalized to a single reporting currency.
//
// The engine is a pure function of its inputs: given the same activities,
// lot method, and exchange-rate table it always produces the same output.
// It performs no I/O, keeps no state between calls, and never panics on
// well-typed input; malformed numerics degrade to zero and oversold
// quantity is surfaced as unmatched-sell records rather than errors.
package tradematch
