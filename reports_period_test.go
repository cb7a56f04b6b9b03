package tradematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformance_PeriodPL_Monthly(t *testing.T) {
	trades := []ClosedTrade{
		closed("AAPL", "2024-03-05", 100, 10, 5),
		closed("AAPL", "2024-03-20", -40, -4, 2),
		closed("MSFT", "2024-01-10", 60, 6, 9),
	}
	buckets := NewPerformance(trades).PeriodPL(Monthly, usdRates(nil))

	require.Len(t, buckets, 2)
	// sorted ascending by key
	assert.Equal(t, "2024-01", buckets[0].Period)
	assert.Equal(t, "2024-03", buckets[1].Period)

	jan, mar := buckets[0], buckets[1]
	assert.True(t, jan.RealizedPL.Equal(USD(60)))
	assert.Equal(t, 1, jan.Trades)

	assert.True(t, mar.RealizedPL.Equal(USD(60)))
	assert.Equal(t, 2, mar.Trades)
	assert.Equal(t, 1, mar.Wins)
	assert.Equal(t, 1, mar.Losses)
}

func TestPerformance_PeriodPL_Granularities(t *testing.T) {
	trades := []ClosedTrade{closed("AAPL", "2024-03-15", 10, 1, 1)}
	p := NewPerformance(trades)
	rates := usdRates(nil)

	tests := []struct {
		granularity Period
		want        string
	}{
		{Daily, "2024-03-15"},
		{Weekly, "2024-W11"},
		{Monthly, "2024-03"},
		{Quarterly, "2024-Q1"},
		{Yearly, "2024"},
	}
	for _, tt := range tests {
		buckets := p.PeriodPL(tt.granularity, rates)
		require.Len(t, buckets, 1, tt.granularity.String())
		assert.Equal(t, tt.want, buckets[0].Period)
	}
}
